// Copyright ©2018 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toeplitz

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
)

// State is the retained factorization of a symmetric positive definite
// Toeplitz system. It supports growing the system by one order (Update)
// and shrinking it back (Downdate) without recomputing the factorization
// from scratch.
//
// A State owns copies of all passed data, callers may reuse their slices
// freely. The zero value is ready to use and represents an order-zero
// system. Methods of State must not be called concurrently.
type State struct {
	t, b []float64 // generator and right-hand side, owned
	y    []float64 // prediction filter
	x    []float64 // solution
	e    float64   // prediction-error power, 0 at order zero

	// Scalar histories of the recursion, one entry per step. They make
	// repeated downdating possible without stored vector snapshots.
	mus []float64 // filter update coefficients μ, from step 2 on
	nus []float64 // appended solution entries ν
	es  []float64 // prediction-error powers E

	// Snapshot of the vectors before the most recent update. Restoring
	// it makes an update followed by a downdate an exact round trip.
	lastY, lastX []float64
	lastE        float64
	haveLast     bool
}

// NewState runs the recursion on the given system and retains its
// factorization for incremental use. Zero-length input gives a state at
// order zero.
//
// NewState panics if the input lengths differ. If a leading principal
// minor is singular or indefinite, an error wrapping ErrSingular is
// returned and the state is lost.
func NewState(t, b []float64) (*State, error) {
	if len(t) != len(b) {
		panic("toeplitz: generator and right-hand side length mismatch")
	}
	s := &State{}
	for i := range t {
		if err := s.Update(t[i], b[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Order returns the order of the currently factored system.
func (s *State) Order() int { return len(s.x) }

// Solution returns a copy of the solution of the currently factored
// system.
func (s *State) Solution() []float64 {
	x := make([]float64, len(s.x))
	copy(x, s.x)
	return x
}

// Pivot returns the prediction-error power at the current order, the last
// pivot of the factorization. It is zero for an order-zero state.
func (s *State) Pivot() float64 { return s.e }

// Inverse assembles the compact representation of the inverse of the
// currently factored matrix. It returns an order-zero Inverse for an
// order-zero state.
func (s *State) Inverse() *Inverse {
	if len(s.x) == 0 {
		return &Inverse{}
	}
	return assembleInverse(s.y, s.e)
}

// Update grows the system by one order, appending tk to the generator and
// bk to the right-hand side, and extends the retained factorization and
// solution.
//
// If the grown matrix is no longer positive definite, Update returns an
// error wrapping ErrSingular and leaves the state unchanged.
func (s *State) Update(tk, bk float64) error {
	k := len(s.x)
	if k == 0 {
		if tk <= 0 {
			return fmt.Errorf("%w at order 1", ErrSingular)
		}
		s.t = append(s.t, tk)
		s.b = append(s.b, bk)
		s.e = tk
		nu := bk / tk
		s.x = append(s.x, nu)
		s.es = append(s.es, tk)
		s.nus = append(s.nus, nu)
		s.lastY = s.lastY[:0]
		s.lastX = s.lastX[:0]
		s.lastE = 0
		s.haveLast = true
		return nil
	}
	s.t = append(s.t, tk)
	s.b = append(s.b, bk)
	mu := -innovation(s.t, s.y, k-1) / s.e
	enew := s.e * (1 - mu*mu)
	if !(enew > 0) {
		s.t = s.t[:k]
		s.b = s.b[:k]
		return fmt.Errorf("%w at order %d", ErrSingular, k+1)
	}
	s.lastY = append(s.lastY[:0], s.y...)
	s.lastX = append(s.lastX[:0], s.x...)
	s.lastE = s.e
	s.haveLast = true

	s.y = append(s.y, 0)
	applyReflection(s.y, mu)
	s.e = enew
	s.x = append(s.x, 0)
	nu := extendSolution(s.t, s.b, s.y, s.x, k, s.e)

	s.mus = append(s.mus, mu)
	s.es = append(s.es, enew)
	s.nus = append(s.nus, nu)
	return nil
}

// Downdate shrinks the system by one order, dropping the last generator
// and right-hand side entries and retracting the factorization and
// solution to the leading subsystem.
//
// A downdate immediately following an update restores the previous state
// exactly. Further downdates reconstruct the earlier states algebraically
// from the retained recursion history, which reintroduces rounding error
// of the same order as recomputing from scratch. Downdating an order-zero
// state returns ErrMinOrder.
func (s *State) Downdate() error {
	k := len(s.x)
	if k == 0 {
		return ErrMinOrder
	}
	if s.haveLast && len(s.lastX) == k-1 {
		s.y = append(s.y[:0], s.lastY...)
		s.x = append(s.x[:0], s.lastX...)
		s.e = s.lastE
	} else {
		// Invert the last recursion step. The solution update and the
		// filter reflection are both invertible while |μ| < 1, which
		// positive definiteness guarantees.
		nu := s.nus[k-1]
		if k > 1 {
			blas64.Implementation().Daxpy(k-1, -nu, s.y, -1, s.x, 1)
		}
		s.x = s.x[:k-1]
		if k > 1 {
			mu := s.mus[k-2]
			m := k - 2
			det := 1 - mu*mu
			for i, j := 0, m-1; i < j; i, j = i+1, j-1 {
				yi := (s.y[i] - mu*s.y[j]) / det
				yj := (s.y[j] - mu*s.y[i]) / det
				s.y[i], s.y[j] = yi, yj
			}
			if m&1 == 1 {
				s.y[m/2] /= 1 + mu
			}
			s.y = s.y[:m]
			s.e = s.es[k-2]
		} else {
			s.y = s.y[:0]
			s.e = 0
		}
	}
	s.haveLast = false
	s.t = s.t[:k-1]
	s.b = s.b[:k-1]
	s.es = s.es[:k-1]
	s.nus = s.nus[:k-1]
	if k > 1 {
		s.mus = s.mus[:k-2]
	}
	return nil
}
