// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"gonum.org/v1/gonum/blas/blas64"
)

// Levinson implements the Levinson-Durbin recursion for symmetric positive
// definite Toeplitz systems.
//
// The method maintains the solution of the Yule-Walker equations of the
// leading subsystem, the prediction filter, and uses it to extend the
// solution of T·x = b by one order per step. Step k costs O(k) floating
// point operations, the whole solve O(n²).
//
// Levinson is the cheapest of the provided methods and the classical
// choice. It divides by the prediction-error power at every step, so its
// accuracy degrades on matrices with reflection coefficients close to one
// in magnitude. See SchurLevinson for a method that detects those steps
// and handles them more robustly.
type Levinson struct {
	y []float64 // prediction filter, ctx.Order-1 entries are in use
	e float64   // prediction-error power
}

// Init implements the Method interface.
func (l *Levinson) Init(n int) {
	if n <= 0 {
		panic("toeplitz: invalid dimension")
	}
	l.y = reuse(l.y, n)
	l.e = 0
}

// Step implements the Method interface.
func (l *Levinson) Step(ctx *Context) error {
	if l.y == nil {
		panic("toeplitz: Levinson.Init not called")
	}
	k := ctx.Order
	if k == 0 {
		t0 := ctx.T[0]
		if t0 <= 0 {
			return ErrSingular
		}
		l.e = t0
		ctx.X[0] = ctx.B[0] / t0
		ctx.Pivot = t0
		ctx.Reflection = 0
		return nil
	}
	mu, enew := extendFilter(ctx.T, l.y, k-1, l.e)
	if !(enew > 0) {
		return ErrSingular
	}
	l.e = enew
	extendSolution(ctx.T, ctx.B, l.y, ctx.X, k, l.e)
	ctx.Pivot = enew
	ctx.Reflection = -mu
	return nil
}

// innovation computes the inner product driving the extension of the
// order-k prediction filter,
//  t[k+1] + Σ_{i=1}^{k} t[i]·y[k-i].
func innovation(t, y []float64, k int) float64 {
	num := t[k+1]
	if k > 0 {
		num += blas64.Implementation().Ddot(k, t[1:], 1, y, -1)
	}
	return num
}

// applyReflection extends the prediction filter by one order in place,
// mapping y[:k] to y[:k] + μ·J·y[:k] with J the exchange matrix and
// appending μ, where k = len(y)-1.
func applyReflection(y []float64, mu float64) {
	k := len(y) - 1
	for i, j := 0, k-1; i < j; i, j = i+1, j-1 {
		yi, yj := y[i], y[j]
		y[i] = yi + mu*yj
		y[j] = yj + mu*yi
	}
	if k&1 == 1 {
		y[k/2] *= 1 + mu
	}
	y[k] = mu
}

// extendFilter performs one step of the Yule-Walker recursion, extending
// the prediction filter from order k to order k+1 in place.
//
// On entry, y[:k] solves T_k·y = -(t[1], ..., t[k]) and e holds the
// prediction-error power E_k. On return, y[:k+1] solves the order-k+1
// equations and the returned power is E_{k+1} = E_k·(1-μ²). The power is
// not sign-checked here, callers decide how to treat a non-positive value.
func extendFilter(t, y []float64, k int, e float64) (mu, enew float64) {
	mu = -innovation(t, y, k) / e
	applyReflection(y[:k+1], mu)
	return mu, e * (1 - mu*mu)
}

// extendSolution extends the solution of the leading subsystem from order
// k to order k+1 in place, using the order-k prediction filter y[:k] and
// prediction-error power e = E_k. It returns the appended solution entry.
func extendSolution(t, b, y, x []float64, k int, e float64) (nu float64) {
	bi := blas64.Implementation()
	num := b[k]
	if k > 0 {
		num -= bi.Ddot(k, t[1:], 1, x, -1)
	}
	nu = num / e
	if k > 0 {
		bi.Daxpy(k, nu, y, -1, x, 1)
	}
	x[k] = nu
	return nu
}
