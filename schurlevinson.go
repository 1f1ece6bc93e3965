// Copyright ©2018 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

// SchurLevinson implements a combined Schur-Levinson recursion for
// symmetric positive definite Toeplitz systems. It is the method used by
// Solve when no method is given.
//
// At every step the method first evaluates the reflection coefficient of
// the plain Levinson update. While its magnitude stays below the threshold
// the step is accepted as is, at the Levinson cost of O(k) operations. When
// the magnitude exceeds the threshold, the step is near-degenerate for the
// plain recursion and the method switches to hyperbolic generator rotations
// of the Schur algorithm, which recompute the pivot from transformed matrix
// data. The generator pair is rebuilt from the prediction filter on demand,
// at O((n-k)·k) cost, and is kept running only while consecutive steps
// remain above the threshold.
//
// On well-conditioned input the method performs exactly like Levinson. The
// steps that used rotations are reported in Stats.Fallbacks.
type SchurLevinson struct {
	// Threshold is the reflection-coefficient magnitude above which a
	// step switches to hyperbolic-rotation updates. It must be in (0,1).
	// If it is zero, DefaultStabilityThreshold is used.
	Threshold float64

	thresh float64

	y []float64 // prediction filter, as in Levinson
	e float64   // prediction-error power

	g, gq   []float64 // generator pair, valid only while current is set
	current bool
}

// Init implements the Method interface.
func (sl *SchurLevinson) Init(n int) {
	if n <= 0 {
		panic("toeplitz: invalid dimension")
	}
	sl.thresh = sl.Threshold
	if sl.thresh == 0 {
		sl.thresh = DefaultStabilityThreshold
	}
	if sl.thresh <= 0 || 1 <= sl.thresh {
		panic("toeplitz: invalid threshold")
	}
	sl.y = reuse(sl.y, n)
	sl.g = reuse(sl.g, n)
	sl.gq = reuse(sl.gq, n)
	sl.e = 0
	sl.current = false
}

// Step implements the Method interface.
func (sl *SchurLevinson) Step(ctx *Context) error {
	if sl.y == nil {
		panic("toeplitz: SchurLevinson.Init not called")
	}
	n := len(ctx.T)
	k := ctx.Order
	if k == 0 {
		t0 := ctx.T[0]
		if t0 <= 0 {
			return ErrSingular
		}
		sl.e = t0
		sl.current = false
		ctx.X[0] = ctx.B[0] / t0
		ctx.Pivot = t0
		ctx.Reflection = 0
		return nil
	}
	if !sl.current {
		mu := -innovation(ctx.T, sl.y, k-1) / sl.e
		if math.Abs(mu) <= sl.thresh {
			// The plain update is safe, |μ| ≤ thresh < 1 keeps the
			// power positive.
			applyReflection(sl.y[:k], mu)
			sl.e *= 1 - mu*mu
			extendSolution(ctx.T, ctx.B, sl.y, ctx.X, k, sl.e)
			ctx.Pivot = sl.e
			ctx.Reflection = -mu
			return nil
		}
		sl.rebuild(ctx.T, k)
		sl.current = true
	}
	ctx.Fallback = true
	rot, err := hrotg(sl.g[k], sl.gq[k])
	if err != nil {
		return err
	}
	rot.apply(sl.g[k:], sl.gq[k:])
	piv := sl.g[k]
	enew := piv * piv
	if !(enew > 0) {
		return ErrSingular
	}
	// Carry the prediction filter along so that later steps can drop back
	// to the plain recursion, and so that the rotation pivot replaces the
	// subtractive power update.
	applyReflection(sl.y[:k], -rot.rho)
	sl.e = enew
	extendSolution(ctx.T, ctx.B, sl.y, ctx.X, k, sl.e)
	ctx.Pivot = sl.e
	ctx.Reflection = rot.rho
	if math.Abs(rot.rho) <= sl.thresh {
		sl.current = false
	} else if k < n-1 {
		shiftDown(sl.g, k, n)
	}
	return nil
}

// rebuild reconstructs the generator pair of the order-k Schur complement
// from the prediction filter, using
//  gq[i] = (t[i]   + Σ_{j=1}^{k-1} t[i-j]·y[j-1]) / √E,  k ≤ i < n
//  g[i]  = (t[i-k] + Σ_{j=1}^{k-1} t[i-k+j]·y[j-1]) / √E,  k < i < n
// and g[k] = √E, where E is the current prediction-error power. The two
// sums run over the same window of t, taken against the reversed and the
// plain filter respectively.
func (sl *SchurLevinson) rebuild(t []float64, k int) {
	n := len(t)
	se := math.Sqrt(sl.e)
	bi := blas64.Implementation()
	sl.g[k] = se
	for i := k; i < n; i++ {
		num := t[i]
		if k > 1 {
			num += bi.Ddot(k-1, t[i-k+1:], 1, sl.y, -1)
		}
		sl.gq[i] = num / se
		if i > k {
			num = t[i-k]
			if k > 1 {
				num += bi.Ddot(k-1, t[i-k+1:], 1, sl.y, 1)
			}
			sl.g[i] = num / se
		}
	}
}
