// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the At/Set fallback paths in kernels.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustDenseFrom builds an r×c *Dense from row-major data or fails the test.
func MustDenseFrom(t testing.TB, r, c int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// fillDenseRand fills m with deterministic values in [-1, 1).
func fillDenseRand(t testing.TB, m *matrix.Dense, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := m.RawData()
	for k := range data {
		data[k] = 2*rng.Float64() - 1
	}
}

// diagDominant returns a random n×n matrix with a heavy diagonal (always invertible).
func diagDominant(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, n, n)
	fillDenseRand(t, m, seed)
	for i := 0; i < n; i++ {
		v := MustAt(t, m, i, i)
		require.NoError(t, m.Set(i, i, v+float64(n)))
	}

	return m
}

// requireVecInDelta asserts |a_i - b_i| <= tol for every i.
func requireVecInDelta(t testing.TB, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.LessOrEqualf(t, math.Abs(want[i]-got[i]), tol, "index %d: want %g got %g", i, want[i], got[i])
	}
}
