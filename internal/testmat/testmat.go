// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testmat provides symmetric positive definite Toeplitz test
// matrices.
package testmat

import "gonum.org/v1/gonum/mat"

// KMS returns the order-n Kac-Murdock-Szegő generator
//  {1, ρ, ρ², ..., ρⁿ⁻¹}.
// The matrix is positive definite for |ρ| < 1 and its conditioning grows
// as ρ approaches 1 in magnitude.
func KMS(n int, rho float64) []float64 {
	t := make([]float64, n)
	if n == 0 {
		return t
	}
	t[0] = 1
	for i := 1; i < n; i++ {
		t[i] = t[i-1] * rho
	}
	return t
}

// FromReflections synthesizes the generator with diagonal t0 whose
// factorization produces exactly the given sequence of reflection
// coefficients. The matrix is positive definite exactly when t0 > 0 and
// every |refl[i]| < 1, which makes the conditioning of a test matrix easy
// to dial in.
func FromReflections(t0 float64, refl []float64) []float64 {
	n := len(refl) + 1
	t := make([]float64, n)
	t[0] = t0
	y := make([]float64, len(refl))
	e := t0
	for k := 1; k < n; k++ {
		num := 0.0
		for j := 1; j < k; j++ {
			num += t[j] * y[k-1-j]
		}
		t[k] = refl[k-1]*e - num
		mu := -refl[k-1]
		for i, j := 0, k-2; i < j; i, j = i+1, j-1 {
			yi, yj := y[i], y[j]
			y[i] = yi + mu*yj
			y[j] = yj + mu*yi
		}
		if (k-1)&1 == 1 {
			y[(k-1)/2] *= 1 + mu
		}
		y[k-1] = mu
		e *= 1 - mu*mu
	}
	return t
}

// Sym returns the full symmetric matrix with the given generator.
func Sym(t []float64) *mat.SymDense {
	n := len(t)
	if n == 0 {
		panic("testmat: empty generator")
	}
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a.SetSym(i, j, t[j-i])
		}
	}
	return a
}
