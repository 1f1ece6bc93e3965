// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Solve solves the system of n linear equations
//  T·x = b,
// where T is the symmetric positive definite n×n Toeplitz matrix with
// generator t, its first column. The dimension of the problem is
// determined by the length of t, and b must have the same length.
//
// method is the recursion used for the solve. If it is nil, a
// SchurLevinson method with default threshold is used. settings adjust the
// driving routine, zero values of the fields mean default values.
//
// If a leading principal minor of T is singular or indefinite, Solve
// returns an error wrapping ErrSingular together with the first failing
// order, and the returned solution holds the solved prefix of the largest
// successful order, Stats.Steps, followed by zeros.
func Solve(t, b []float64, method Method, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	n := len(t)
	if len(b) != n {
		panic("toeplitz: generator and right-hand side length mismatch")
	}

	if n == 0 {
		return Result{Stats: stats}, nil
	}

	if method == nil {
		method = &SchurLevinson{}
	}
	defaultSettings(&settings)
	if settings.StabilityThreshold <= 0 || 1 <= settings.StabilityThreshold {
		panic("toeplitz: invalid stability threshold")
	}

	ctx := &Context{
		T: t,
		B: b,
		X: make([]float64, n),
	}
	var err error
	if t[0] == 0 {
		// The order-1 leading minor vanishes, no recursion step can run.
		err = fmt.Errorf("%w at order 1", ErrSingular)
		stats.Runtime = time.Since(stats.StartTime)
		return Result{X: ctx.X, Stats: stats}, err
	}

	method.Init(n)
	stats.MinPivot = math.Inf(1)
	for k := 0; k < n; k++ {
		err = method.Step(ctx)
		if err != nil {
			err = fmt.Errorf("%w at order %d", err, k+1)
			break
		}
		ctx.Order++
		stats.Steps++
		if ctx.Fallback {
			stats.Fallbacks = append(stats.Fallbacks, k)
			ctx.Fallback = false
		}
		if r := math.Abs(ctx.Reflection); r > stats.MaxReflection {
			stats.MaxReflection = r
		}
		if ctx.Pivot < stats.MinPivot {
			stats.MinPivot = ctx.Pivot
		}
	}
	if stats.Steps == 0 {
		stats.MinPivot = 0
	} else {
		stats.ConditionEstimate = t[0] / stats.MinPivot
	}
	stats.IllConditioned = stats.MaxReflection > settings.StabilityThreshold

	if err == nil && settings.ComputeResidual {
		r := make([]float64, n)
		MulVec(r, t, ctx.X)
		floats.AddScaledTo(r, b, -1, r)
		stats.ResidualNorm = floats.Norm(r, 2)
	}

	stats.Runtime = time.Since(stats.StartTime)
	return Result{
		X:     ctx.X,
		Stats: stats,
	}, err
}
