// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

// Schur implements the generalized Schur algorithm for symmetric positive
// definite Toeplitz systems.
//
// The method propagates a pair of generator vectors of the displacement
// structure of T with hyperbolic plane rotations. Each step reveals one
// column of the Cholesky factor of T together with the matching column of
// its inverse transpose, and folds them into the solution by forward and
// backward accumulation. Step k costs O(n-k) operations on the generators
// plus O(k) on the solution, the whole solve O(n²).
//
// Unlike Levinson, the recursion works on transformed matrix data only and
// does not form inner products with previous solution vectors, which gives
// it better numerical behavior on ill-conditioned input.
type Schur struct {
	g, gq []float64 // generator pair of the matrix
	h, hq []float64 // generator pair carrying inverse-transpose columns
	z     []float64 // forward-substituted right-hand side
}

// Init implements the Method interface.
func (s *Schur) Init(n int) {
	if n <= 0 {
		panic("toeplitz: invalid dimension")
	}
	s.g = reuse(s.g, n)
	s.gq = reuse(s.gq, n)
	s.h = reuse(s.h, n)
	s.hq = reuse(s.hq, n)
	s.z = reuse(s.z, n)
}

// Step implements the Method interface.
func (s *Schur) Step(ctx *Context) error {
	if s.z == nil {
		panic("toeplitz: Schur.Init not called")
	}
	n := len(ctx.T)
	k := ctx.Order
	bi := blas64.Implementation()
	if k == 0 {
		t0 := ctx.T[0]
		if t0 <= 0 {
			return ErrSingular
		}
		d := math.Sqrt(t0)
		for i, ti := range ctx.T {
			s.g[i] = ti / d
			s.gq[i] = ti / d
		}
		s.gq[0] = 0
		for i := range s.h {
			s.h[i] = 0
			s.hq[i] = 0
		}
		s.h[0] = 1 / d
		s.hq[0] = 1 / d
		copy(s.z, ctx.B)
		ctx.Pivot = t0
		ctx.Reflection = 0
	} else {
		rot, err := hrotg(s.g[k], s.gq[k])
		if err != nil {
			return err
		}
		rot.apply(s.g[k:], s.gq[k:])
		rot.apply(s.h[:k+1], s.hq[:k+1])
		piv := s.g[k]
		if piv == 0 {
			return ErrSingular
		}
		ctx.Pivot = piv * piv
		ctx.Reflection = rot.rho
	}
	// The generators now expose column k of the Cholesky factor in g[k:]
	// and column k of its inverse transpose in h[:k+1]. Eliminate z[k] and
	// accumulate the solution.
	zk := s.z[k] / s.g[k]
	s.z[k] = zk
	if k < n-1 {
		bi.Daxpy(n-k-1, -zk, s.g[k+1:], 1, s.z[k+1:], 1)
	}
	bi.Daxpy(k+1, zk, s.h, 1, ctx.X, 1)
	if k < n-1 {
		// Align the pivot columns with the next leading subsystem.
		shiftDown(s.g, k, n)
		shiftDown(s.h, 0, k+2)
	}
	return nil
}

// hyperbolic is a hyperbolic plane rotation Θ, satisfying ΘJΘᵀ = J with
// J = diag(1,-1).
type hyperbolic struct {
	rho float64 // reflection coefficient
	c   float64 // 1/√((1-ρ)(1+ρ))
	s   float64 // √((1-ρ)(1+ρ))
}

// hrotg constructs the hyperbolic rotation that annihilates q against the
// pivot p. It returns ErrSingular when |q| >= |p|, that is when the leading
// principal minor being revealed is singular or indefinite.
func hrotg(p, q float64) (hyperbolic, error) {
	if p == 0 {
		return hyperbolic{}, ErrSingular
	}
	rho := q / p
	if !(math.Abs(rho) < 1) {
		return hyperbolic{}, ErrSingular
	}
	s := math.Sqrt((1 - rho) * (1 + rho))
	return hyperbolic{rho: rho, c: 1 / s, s: s}, nil
}

// apply rotates the vector pair (p, q) in place using the mixed form
//  p[i] ← c·(p[i] - ρ·q[i])
//  q[i] ← s·q[i] - ρ·p[i]
// with the updated p entering the second line, which keeps the hyperbolic
// transformation backward stable.
func (h hyperbolic) apply(p, q []float64) {
	for i, pi := range p {
		qi := q[i]
		pi = h.c * (pi - h.rho*qi)
		p[i] = pi
		q[i] = h.s*qi - h.rho*pi
	}
}
