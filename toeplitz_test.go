// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vladimir-ch/toeplitz/internal/testmat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var testOrders = []int{1, 2, 3, 4, 5, 8, 10, 16, 20, 50, 100, 200}

// randSystem returns a random well-conditioned symmetric positive definite
// Toeplitz system of the given order.
func randSystem(n int, rnd *rand.Rand) (t, b []float64) {
	refl := make([]float64, n-1)
	for i := range refl {
		refl[i] = 0.3 * (rnd.Float64() - 0.5)
	}
	t = testmat.FromReflections(1+rnd.Float64(), refl)
	b = make([]float64, n)
	for i := range b {
		b[i] = rnd.NormFloat64()
	}
	return t, b
}

// solveDense solves T·x = b with a dense Cholesky factorization, serving
// as the reference for the fast recursions.
func solveDense(tb testing.TB, t, b []float64) []float64 {
	tb.Helper()
	n := len(t)
	var ch mat.Cholesky
	if !ch.Factorize(testmat.Sym(t)) {
		tb.Fatalf("dense Cholesky factorization failed for order %d", n)
	}
	x := mat.NewVecDense(n, nil)
	if err := ch.SolveVecTo(x, mat.NewVecDense(n, b)); err != nil {
		tb.Fatalf("dense solve failed for order %d: %v", n, err)
	}
	return x.RawVector().Data
}

// residualNorm returns |b - T·x|.
func residualNorm(t, b, x []float64) float64 {
	r := make([]float64, len(t))
	MulVec(r, t, x)
	floats.AddScaledTo(r, b, -1, r)
	return floats.Norm(r, 2)
}

func TestMulVec(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 5, 10, 33} {
		gen, x := randSystem(n, rnd)
		got := make([]float64, n)
		MulVec(got, gen, x)
		var want mat.VecDense
		want.MulVec(testmat.Sym(gen), mat.NewVecDense(n, x))
		require.InDeltaSlice(t, want.RawVector().Data, got, 1e-13, "order %d", n)
	}
}

func TestKnownSolution(t *testing.T) {
	gen := []float64{4, 2, 1}
	b := []float64{1, 2, 3}
	want := []float64{0, 1.0 / 6, 2.0 / 3}
	for _, method := range []Method{&Levinson{}, &Schur{}, &SchurLevinson{}} {
		res, err := Solve(gen, b, method, Settings{})
		require.NoError(t, err)
		require.Equal(t, 3, res.Stats.Steps)
		require.InDeltaSlice(t, want, res.X, 1e-14)
	}
}

func TestVariantsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 5, 20, 77} {
		gen, b := randSystem(n, rnd)
		rl, err := Solve(gen, b, &Levinson{}, Settings{})
		require.NoError(t, err, "order %d", n)
		rs, err := Solve(gen, b, &Schur{}, Settings{})
		require.NoError(t, err, "order %d", n)
		rc, err := Solve(gen, b, &SchurLevinson{}, Settings{})
		require.NoError(t, err, "order %d", n)

		require.InDeltaSlice(t, rl.X, rs.X, 1e-11, "order %d", n)
		// Without fallback steps the combined method runs exactly the
		// Levinson arithmetic.
		require.Equal(t, rl.X, rc.X, "order %d", n)
		require.Nil(t, rc.Stats.Fallbacks, "order %d", n)

		require.InDelta(t, rl.Stats.MaxReflection, rs.Stats.MaxReflection, 1e-12, "order %d", n)
		require.InDelta(t, rl.Stats.MinPivot, rs.Stats.MinPivot, 1e-12, "order %d", n)
	}
}

func TestSolveZeroDimension(t *testing.T) {
	res, err := Solve(nil, nil, nil, Settings{})
	require.NoError(t, err)
	require.Empty(t, res.X)
	require.Equal(t, 0, res.Stats.Steps)
}

func TestSolveZeroDiagonal(t *testing.T) {
	for _, method := range []Method{nil, &Levinson{}, &Schur{}, &SchurLevinson{}} {
		res, err := Solve([]float64{0, 1, 2}, []float64{1, 1, 1}, method, Settings{})
		require.ErrorIs(t, err, ErrSingular)
		require.ErrorContains(t, err, "order 1")
		require.Equal(t, 0, res.Stats.Steps)
		require.Equal(t, []float64{0, 0, 0}, res.X)
	}
}

func TestSolveComputeResidual(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	gen, b := randSystem(40, rnd)
	res, err := Solve(gen, b, nil, Settings{ComputeResidual: true})
	require.NoError(t, err)
	require.LessOrEqual(t, res.Stats.ResidualNorm, 1e-12*floats.Norm(b, 2))
	require.Equal(t, residualNorm(gen, b, res.X), res.Stats.ResidualNorm)

	res, err = Solve(gen, b, nil, Settings{})
	require.NoError(t, err)
	require.Zero(t, res.Stats.ResidualNorm)
}

func TestSolvePanics(t *testing.T) {
	require.Panics(t, func() { Solve([]float64{1, 2}, []float64{1}, nil, Settings{}) })
	require.Panics(t, func() { Solve([]float64{1}, []float64{1}, nil, Settings{StabilityThreshold: 1.5}) })
	require.Panics(t, func() { Solve([]float64{1}, []float64{1}, nil, Settings{StabilityThreshold: -0.5}) })
	require.Panics(t, func() { Solve([]float64{1}, []float64{1}, &SchurLevinson{Threshold: -1}, Settings{}) })
	require.Panics(t, func() { MulVec(make([]float64, 2), []float64{1, 2}, []float64{1}) })
	require.Panics(t, func() { MulVec(make([]float64, 1), []float64{1, 2}, []float64{1, 2}) })
}

func TestConditionEstimateIsLowerBound(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	for _, n := range []int{2, 5, 10, 40} {
		gen, b := randSystem(n, rnd)
		res, err := Solve(gen, b, &Levinson{}, Settings{})
		require.NoError(t, err, "order %d", n)

		var ev mat.EigenSym
		require.True(t, ev.Factorize(testmat.Sym(gen), false))
		vals := ev.Values(nil)
		cond := vals[n-1] / vals[0]
		require.LessOrEqual(t, res.Stats.ConditionEstimate, cond*(1+1e-12), "order %d", n)
		require.GreaterOrEqual(t, res.Stats.ConditionEstimate, 1.0, "order %d", n)
	}
}
