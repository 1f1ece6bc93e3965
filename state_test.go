// Copyright ©2018 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStateMatchesSolve(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 10, 40} {
		gen, b := randSystem(n, rnd)
		st, err := NewState(gen, b)
		require.NoError(t, err, "order %d", n)
		res, err := Solve(gen, b, &Levinson{}, Settings{})
		require.NoError(t, err, "order %d", n)
		require.Equal(t, n, st.Order())
		// The state runs the same recursion arithmetic as Levinson.
		require.Equal(t, res.X, st.Solution(), "order %d", n)
		require.Greater(t, st.Pivot(), 0.0)
	}
}

func TestStateUpdateDowndateRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	gen, b := randSystem(30, rnd)
	st, err := NewState(gen[:20], b[:20])
	require.NoError(t, err)
	before := st.Solution()
	pivBefore := st.Pivot()

	require.NoError(t, st.Update(gen[20], b[20]))
	require.Equal(t, 21, st.Order())
	fresh, err := NewState(gen[:21], b[:21])
	require.NoError(t, err)
	require.Equal(t, fresh.Solution(), st.Solution())

	// Downdating right after an update restores the state exactly.
	require.NoError(t, st.Downdate())
	require.Equal(t, 20, st.Order())
	require.Equal(t, before, st.Solution())
	require.Equal(t, pivBefore, st.Pivot())
}

func TestStateRepeatedDowndate(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	gen, b := randSystem(12, rnd)
	st, err := NewState(gen, b)
	require.NoError(t, err)
	for n := 11; n >= 1; n-- {
		require.NoError(t, st.Downdate())
		require.Equal(t, n, st.Order())
		fresh, err := NewState(gen[:n], b[:n])
		require.NoError(t, err)
		require.InDeltaSlice(t, fresh.Solution(), st.Solution(), 1e-10, "order %d", n)
		require.InDelta(t, fresh.Pivot(), st.Pivot(), 1e-12, "order %d", n)
	}
	require.NoError(t, st.Downdate())
	require.Equal(t, 0, st.Order())
	require.Empty(t, st.Solution())
	require.Zero(t, st.Pivot())
	require.ErrorIs(t, st.Downdate(), ErrMinOrder)
}

func TestStateGrowFromZero(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	gen, b := randSystem(15, rnd)
	var st State // the zero value is an order-zero state
	for i := range gen {
		require.NoError(t, st.Update(gen[i], b[i]))
	}
	fresh, err := NewState(gen, b)
	require.NoError(t, err)
	require.Equal(t, fresh.Solution(), st.Solution())
	require.Equal(t, fresh.Pivot(), st.Pivot())
}

func TestStateUpdateRejected(t *testing.T) {
	st, err := NewState([]float64{1, 0.9}, []float64{1, 1})
	require.NoError(t, err)
	before := st.Solution()

	// Appending 1.2 would make the order-3 matrix indefinite.
	err = st.Update(1.2, 1)
	require.ErrorIs(t, err, ErrSingular)
	require.ErrorContains(t, err, "order 3")
	require.Equal(t, 2, st.Order())
	require.Equal(t, before, st.Solution())

	// The rejected update leaves the state usable.
	require.NoError(t, st.Update(0.7, 1))
	require.Equal(t, 3, st.Order())

	var zero State
	require.ErrorIs(t, zero.Update(-1, 1), ErrSingular)
	require.ErrorIs(t, zero.Update(0, 1), ErrSingular)
	require.Equal(t, 0, zero.Order())
}

func TestStateKnownChain(t *testing.T) {
	st, err := NewState([]float64{4, 2}, []float64{1, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.5}, st.Solution())

	require.NoError(t, st.Update(1, 3))
	require.InDeltaSlice(t, []float64{0, 1.0 / 6, 2.0 / 3}, st.Solution(), 1e-15)

	require.NoError(t, st.Downdate())
	require.Equal(t, []float64{0, 0.5}, st.Solution())

	require.NoError(t, st.Downdate())
	require.Equal(t, []float64{0.25}, st.Solution())
	require.Equal(t, 4.0, st.Pivot())

	require.NoError(t, st.Downdate())
	require.ErrorIs(t, st.Downdate(), ErrMinOrder)
}

func TestStatePanics(t *testing.T) {
	require.Panics(t, func() { NewState([]float64{1, 2}, []float64{1}) })
}

func TestStateSolutionIsCopy(t *testing.T) {
	st, err := NewState([]float64{2, 1}, []float64{1, 1})
	require.NoError(t, err)
	x := st.Solution()
	x[0] = 42
	require.NotEqual(t, x[0], st.Solution()[0])
}
