// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import "errors"

var (
	// ErrSingular is returned when a leading principal minor of the
	// matrix is singular or indefinite, so the recursion cannot continue.
	// Errors returned by the package wrap ErrSingular together with the
	// first failing order.
	ErrSingular = errors.New("toeplitz: matrix is singular or not positive definite")

	// ErrMinOrder is returned by State.Downdate when the state is
	// already at order zero.
	ErrMinOrder = errors.New("toeplitz: cannot downdate an order-zero state")
)
