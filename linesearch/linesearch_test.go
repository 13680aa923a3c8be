// SPDX-License-Identifier: MIT
package linesearch_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/lvsolve/linesearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counted wraps a merit function with an evaluation counter.
func counted(phi func(float64) float64, calls *int) linesearch.Merit {
	return func(a float64) (float64, error) {
		*calls++
		return phi(a), nil
	}
}

func TestBacktrackingAcceptsFullStep(t *testing.T) {
	calls := 0
	phi := func(a float64) float64 { return (a - 1) * (a - 1) }
	alpha, err := linesearch.NewBacktracking().Search(linesearch.Problem{
		Merit: counted(phi, &calls), Value0: 1, Slope0: -2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, alpha)
	assert.Equal(t, 1, calls)
}

func TestBacktrackingQuadraticInterpolation(t *testing.T) {
	calls := 0
	phi := func(a float64) float64 { return (a - 0.1) * (a - 0.1) }
	alpha, err := linesearch.NewBacktracking().Search(linesearch.Problem{
		Merit: counted(phi, &calls), Value0: phi(0), Slope0: -0.2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, alpha, 1e-12, "exact minimiser of a quadratic merit")
	assert.Equal(t, 2, calls)
}

func TestBacktrackingArmijo(t *testing.T) {
	phi := func(a float64) float64 { return 1 - a + 10*a*a*a }
	for _, order := range []int{2, 3} {
		bt := linesearch.NewBacktracking(linesearch.WithOrder(order))
		alpha, err := bt.Search(linesearch.Problem{
			Merit: func(a float64) (float64, error) { return phi(a), nil }, Value0: 1, Slope0: -1,
		})
		require.NoError(t, err)
		assert.Greater(t, alpha, 0.0)
		assert.Less(t, alpha, 1.0)
		assert.LessOrEqual(t, phi(alpha), 1-bt.C1*alpha, "order %d", order)
	}
}

func TestBacktrackingNonFinite(t *testing.T) {
	phi := func(a float64) float64 {
		if a > 0.3 {
			return math.Inf(1)
		}
		return (a - 0.2) * (a - 0.2)
	}
	alpha, err := linesearch.NewBacktracking().Search(linesearch.Problem{
		Merit: func(a float64) (float64, error) { return phi(a), nil }, Value0: 0.04, Slope0: -0.4,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, alpha, 0.3)
	assert.False(t, math.IsInf(phi(alpha), 0))
}

func TestBacktrackingErrors(t *testing.T) {
	flat := func(float64) (float64, error) { return 2, nil }

	_, err := linesearch.NewBacktracking().Search(linesearch.Problem{Merit: flat, Value0: 1, Slope0: 0})
	require.ErrorIs(t, err, linesearch.ErrNotDescent)

	_, err = linesearch.NewBacktracking(linesearch.WithMaxSteps(3)).Search(
		linesearch.Problem{Merit: flat, Value0: 1, Slope0: -1})
	require.ErrorIs(t, err, linesearch.ErrMaxSteps)

	_, err = linesearch.NewBacktracking().Search(linesearch.Problem{Value0: 1, Slope0: -1})
	require.ErrorIs(t, err, linesearch.ErrBadProblem)

	boom := errors.New("boom")
	_, err = linesearch.NewBacktracking().Search(linesearch.Problem{
		Merit: func(float64) (float64, error) { return 0, boom }, Value0: 1, Slope0: -1,
	})
	require.ErrorIs(t, err, boom)
}

func TestStatic(t *testing.T) {
	calls := 0
	s := linesearch.Static{}
	alpha, err := s.Search(linesearch.Problem{Merit: counted(func(float64) float64 { return 0 }, &calls)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, alpha)
	assert.Zero(t, calls)

	alpha, err = s.Search(linesearch.Problem{Initial: 0.25})
	require.NoError(t, err)
	assert.Equal(t, 0.25, alpha)

	_, err = s.Search(linesearch.Problem{Initial: -1})
	require.ErrorIs(t, err, linesearch.ErrBadProblem)
}

func TestParse(t *testing.T) {
	s, err := linesearch.Parse("Static")
	require.NoError(t, err)
	assert.Equal(t, "static", s.Name())

	s, err = linesearch.Parse("")
	require.NoError(t, err)
	assert.Equal(t, "backtracking", s.Name())

	_, err = linesearch.Parse("hagerzhang")
	require.ErrorIs(t, err, linesearch.ErrUnknown)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { linesearch.WithC1(0) })
	assert.Panics(t, func() { linesearch.WithC1(1) })
	assert.Panics(t, func() { linesearch.WithRho(0.6, 0.5) })
	assert.Panics(t, func() { linesearch.WithMaxSteps(0) })
	assert.Panics(t, func() { linesearch.WithOrder(4) })
	assert.NotPanics(t, func() { linesearch.WithRho(0.1, 0.1) })
}
