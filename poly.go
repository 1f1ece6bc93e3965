// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import "gonum.org/v1/gonum/blas/blas64"

// lconv computes the causal product
//  dst[i] = Σ_{j<=i} c[i-j]·x[j],
// the action of the lower triangular Toeplitz matrix with first column c.
// dst must not alias c or x.
func lconv(dst, c, x []float64) {
	n := len(dst)
	for i := range dst {
		dst[i] = 0
	}
	bi := blas64.Implementation()
	for j, xj := range x {
		if xj == 0 {
			continue
		}
		bi.Daxpy(n-j, xj, c, 1, dst[j:], 1)
	}
}

// lcorr computes the anticausal product
//  dst[i] = Σ_{j>=i} c[j-i]·x[j],
// the action of the transpose of the matrix applied by lconv.
// dst must not alias c or x.
func lcorr(dst, c, x []float64) {
	n := len(dst)
	bi := blas64.Implementation()
	for i := range dst {
		dst[i] = bi.Ddot(n-i, c, 1, x[i:], 1)
	}
}

// shiftDown moves v[lo:hi-1] one place down to v[lo+1:hi] and clears v[lo].
func shiftDown(v []float64, lo, hi int) {
	copy(v[lo+1:hi], v[lo:hi-1])
	v[lo] = 0
}
