// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toeplitz provides direct solvers for systems of linear equations
// whose coefficient matrix is a symmetric positive definite Toeplitz matrix.
//
// A Toeplitz matrix is constant along each of its diagonals, so an n×n
// symmetric matrix T is fully described by its first column
//  t = {t_0, t_1, ..., t_{n-1}},
// called the generator of T. The structure admits solvers that run in O(n²)
// time with O(n) working memory, compared with O(n³) time and O(n²) memory
// for a dense factorization of the same system.
//
// The solvers advance a factorization of the leading principal submatrices
// of T one order at a time. Three recursion strategies are provided: the
// Levinson-Durbin recursion (Levinson), the generalized Schur algorithm
// with hyperbolic rotations (Schur), and a combined method that switches
// between the two based on a per-step stability indicator (SchurLevinson).
// All of them require T to be symmetric positive definite and report
// ErrSingular at the first order whose leading principal minor is found to
// be singular or indefinite.
//
// Beyond plain solving, the package supports growing and shrinking an
// already factored system by one order at a time (State), assembling the
// inverse of T in compact Gohberg-Semencul form or as an explicit dense
// matrix (Inverse), and improving a computed solution by iterative
// refinement (Refine).
package toeplitz

import (
	"time"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// DefaultStabilityThreshold is the reflection-coefficient magnitude above
// which a recursion step is considered close to degenerate. It is the
// default for both Settings.StabilityThreshold and SchurLevinson.Threshold.
const DefaultStabilityThreshold = 0.95

// Method is a recursion strategy that factors a symmetric positive definite
// Toeplitz system and extends its solution order by order.
//
// Method instances hold the internal vectors of the recursion, so they must
// not be shared by concurrent solves. The driving routine in Solve calls
// Init once and then Step once per order.
type Method interface {
	// Init initializes the method for solving a system of the given order.
	// It must be called before any call to Step.
	Init(n int)

	// Step advances the factorization from order ctx.Order to order
	// ctx.Order+1, extending the solution prefix in ctx.X and publishing
	// the step diagnostics in ctx. It must return ErrSingular if the
	// leading principal minor at the new order is singular or indefinite.
	Step(ctx *Context) error
}

// Context mediates a solve between the driving routine and a Method.
type Context struct {
	// T is the generator of the matrix, its first column. Methods must
	// treat it as read-only.
	T []float64
	// B is the right-hand side. Methods must treat it as read-only.
	B []float64
	// X is the solution buffer. After a successful Step, X[:Order+1]
	// holds the solution of the leading subsystem of that order.
	X []float64

	// Order is the number of completed recursion steps. It is maintained
	// by the driving routine.
	Order int

	// Pivot is the prediction-error power E_k after the last step, the
	// pivot of the underlying LDLᵀ factorization. For positive definite
	// input the sequence of pivots is positive and non-increasing.
	Pivot float64
	// Reflection is the reflection coefficient (partial correlation
	// coefficient) revealed by the last step. Its magnitude is strictly
	// below 1 for positive definite input and is the per-step stability
	// indicator.
	Reflection float64
	// Fallback is set by a Method whose last step used its more robust
	// update. The driving routine records and clears it.
	Fallback bool
}

// Settings holds the options of the driving routine in Solve.
type Settings struct {
	// StabilityThreshold is the reflection-coefficient magnitude above
	// which the solve is flagged as ill-conditioned in Stats. It must be
	// in (0,1). If it is zero, DefaultStabilityThreshold is used.
	StabilityThreshold float64

	// ComputeResidual requests that the driving routine compute the
	// residual norm |b-T·x| of the returned solution with a direct O(n²)
	// product and store it in Stats.ResidualNorm.
	ComputeResidual bool
}

// DefaultSettings returns the default settings of the driving routine.
func DefaultSettings() Settings {
	return Settings{
		StabilityThreshold: DefaultStabilityThreshold,
	}
}

func defaultSettings(s *Settings) {
	if s.StabilityThreshold == 0 {
		s.StabilityThreshold = DefaultStabilityThreshold
	}
}

// Stats holds diagnostics of a performed solve.
type Stats struct {
	// Steps is the number of completed recursion steps, that is, the
	// order of the largest solved leading subsystem.
	Steps int
	// Fallbacks lists the steps that the combined method executed with
	// hyperbolic-rotation updates instead of the plain recursion. It is
	// nil for the other methods.
	Fallbacks []int

	// MinPivot is the smallest prediction-error power encountered.
	MinPivot float64
	// MaxReflection is the largest reflection-coefficient magnitude
	// encountered.
	MaxReflection float64
	// ConditionEstimate is a cheap lower bound on the 2-norm condition
	// number of the matrix, derived from the extreme pivots. It can be
	// far below the true condition number.
	ConditionEstimate float64
	// IllConditioned reports whether MaxReflection exceeded the
	// configured stability threshold. The solution is still returned.
	IllConditioned bool

	// Iterations is the number of refinement sweeps performed by Refine.
	Iterations int
	// ResidualNorm is the 2-norm of the residual b-T·x. It is filled in
	// by Refine, and by Solve when Settings.ComputeResidual is set.
	ResidualNorm float64

	// StartTime is an approximate time when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration of the solve.
	Runtime time.Duration
}

// Result holds the result of a solve.
type Result struct {
	// X is the computed solution.
	X []float64
	// Stats holds statistics about the solve.
	Stats Stats
}

// MulVec computes dst = T·x where T is the symmetric Toeplitz matrix with
// the given generator. It is the direct O(n²) product used by iterative
// refinement and by reference checks, it does not use the fast recursions.
//
// dst must not alias t or x.
func MulVec(dst, t, x []float64) {
	n := len(t)
	if len(x) != n {
		panic("toeplitz: generator and vector length mismatch")
	}
	if len(dst) != n {
		panic("toeplitz: bad destination length")
	}
	if n == 0 {
		return
	}
	floats.ScaleTo(dst, t[0], x)
	bi := blas64.Implementation()
	for d := 1; d < n; d++ {
		td := t[d]
		if td == 0 {
			continue
		}
		// Scatter the d-th super- and subdiagonal.
		bi.Daxpy(n-d, td, x[d:], 1, dst[:n-d], 1)
		bi.Daxpy(n-d, td, x[:n-d], 1, dst[d:], 1)
	}
}

func reuse(v []float64, n int) []float64 {
	if cap(v) < n {
		return make([]float64, n)
	}
	return v[:n]
}

const dlamchE = 1.0 / (1 << 53)
