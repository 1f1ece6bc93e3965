// Copyright ©2018 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// Inverse is a compact representation of the inverse of a symmetric
// positive definite Toeplitz matrix.
//
// The inverse of a Toeplitz matrix is in general not Toeplitz, but it is
// fully determined by the first column u of T⁻¹ through the
// Gohberg-Semencul formula
//  T⁻¹ = (Lu·Luᵀ - Lv·Lvᵀ) / u[0],
// where Lu is the lower triangular Toeplitz matrix with first column u,
// and Lv the one with first column v = (0, u[n-1], ..., u[1]). An Inverse
// stores only u and v, applies T⁻¹ to a vector in O(n²) operations, and
// can expand the explicit dense inverse on request.
//
// An Inverse is immutable and safe for concurrent use.
type Inverse struct {
	u, v []float64
}

// Invert computes the inverse of the symmetric positive definite Toeplitz
// matrix with the given generator. Only the prediction half of the
// recursion runs, no right-hand side is involved. Zero-length input gives
// an order-zero Inverse.
//
// If a leading principal minor is singular or indefinite, an error
// wrapping ErrSingular is returned.
func Invert(t []float64) (*Inverse, error) {
	n := len(t)
	if n == 0 {
		return &Inverse{}, nil
	}
	if t[0] <= 0 {
		return nil, fmt.Errorf("%w at order 1", ErrSingular)
	}
	y := make([]float64, n-1)
	e := t[0]
	for k := 0; k < n-1; k++ {
		_, enew := extendFilter(t, y, k, e)
		if !(enew > 0) {
			return nil, fmt.Errorf("%w at order %d", ErrSingular, k+2)
		}
		e = enew
	}
	return assembleInverse(y, e), nil
}

// assembleInverse builds the compact inverse from the full-order
// prediction filter and prediction-error power.
func assembleInverse(y []float64, e float64) *Inverse {
	n := len(y) + 1
	u := make([]float64, n)
	u[0] = 1 / e
	for i := 1; i < n; i++ {
		u[i] = y[i-1] / e
	}
	v := make([]float64, n)
	for i := 1; i < n; i++ {
		v[i] = u[n-i]
	}
	return &Inverse{u: u, v: v}
}

// Order returns the order of the inverted matrix.
func (inv *Inverse) Order() int { return len(inv.u) }

// MulVec computes dst = T⁻¹·x without forming the dense inverse, as four
// triangular Toeplitz products in O(n²) operations. It allocates two
// scratch vectors per call and is safe for concurrent use.
func (inv *Inverse) MulVec(dst, x []float64) {
	n := len(inv.u)
	if len(x) != n {
		panic("toeplitz: inverse and vector order mismatch")
	}
	if len(dst) != n {
		panic("toeplitz: bad destination length")
	}
	if n == 0 {
		return
	}
	tmp := make([]float64, n)
	w := make([]float64, n)
	lcorr(tmp, inv.u, x)
	lconv(w, inv.u, tmp)
	lcorr(tmp, inv.v, x)
	lconv(dst, inv.v, tmp)
	floats.AddScaledTo(dst, w, -1, dst)
	floats.Scale(1/inv.u[0], dst)
}

// Dense expands the explicit dense inverse. The result is symmetric and
// persymmetric, and the expansion by the Trench recurrence costs O(n²)
// operations, one fused update per entry of the upper triangle.
func (inv *Inverse) Dense() blas64.General {
	n := len(inv.u)
	a := blas64.General{
		Rows:   n,
		Cols:   n,
		Stride: max(1, n),
		Data:   make([]float64, n*n),
	}
	if n == 0 {
		return a
	}
	u, v := inv.u, inv.v
	copy(a.Data[:n], u)
	for i := 1; i < n; i++ {
		a.Data[i*n] = u[i]
	}
	d := 1 / u[0]
	for i := 1; i < n; i++ {
		for j := i; j < n; j++ {
			aij := a.Data[(i-1)*n+j-1] + d*(u[i]*u[j]-v[i]*v[j])
			a.Data[i*n+j] = aij
			a.Data[j*n+i] = aij
		}
	}
	return a
}
