// Copyright ©2018 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Refine improves an approximate solution x0 of T·x = b by iterative
// refinement. Each sweep computes the residual r = b-T·x with the direct
// O(n²) product, solves the correction system T·δ = r with the given
// method, and adds the correction to the iterate.
//
// The returned solution is the iterate with the smallest observed residual
// norm, so it is never worse than x0, and refining an already converged
// solution leaves it unchanged. Sweeps stop early when the residual norm
// stops decreasing or reaches rounding level relative to b.
//
// A nil method selects the same default as Solve. maxiter is the maximum
// number of sweeps, non-positive values mean a default of 3. If a
// correction solve fails, the best iterate found so far is returned
// together with the error.
func Refine(t, b, x0 []float64, method Method, maxiter int, settings Settings) (Result, error) {
	n := len(t)
	if len(b) != n || len(x0) != n {
		panic("toeplitz: generator, right-hand side and solution length mismatch")
	}
	stats := Stats{StartTime: time.Now()}
	if n == 0 {
		stats.Runtime = time.Since(stats.StartTime)
		return Result{Stats: stats}, nil
	}
	if maxiter <= 0 {
		maxiter = 3
	}

	x := make([]float64, n)
	copy(x, x0)
	r := make([]float64, n)
	MulVec(r, t, x)
	floats.AddScaledTo(r, b, -1, r)
	rnorm := floats.Norm(r, 2)

	best := make([]float64, n)
	copy(best, x)
	bestNorm := rnorm

	tiny := dlamchE * floats.Norm(b, 2)
	for i := 0; i < maxiter && rnorm > tiny; i++ {
		res, err := Solve(t, r, method, settings)
		if err != nil {
			stats.ResidualNorm = bestNorm
			stats.Runtime = time.Since(stats.StartTime)
			return Result{X: best, Stats: stats}, err
		}
		floats.Add(x, res.X)
		MulVec(r, t, x)
		floats.AddScaledTo(r, b, -1, r)
		rnorm = floats.Norm(r, 2)
		stats.Iterations++
		if rnorm >= bestNorm {
			break
		}
		bestNorm = rnorm
		copy(best, x)
	}
	stats.ResidualNorm = bestNorm
	stats.Runtime = time.Since(stats.StartTime)
	return Result{X: best, Stats: stats}, nil
}
