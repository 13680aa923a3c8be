// SPDX-License-Identifier: MIT
package problems_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsolve/function"
	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/katalvlaran/lvsolve/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueNames(t *testing.T) {
	want := []string{
		"affine", "broyden-tridiagonal", "constant", "helical-valley",
		"nlsolve", "powell-badly-scaled", "rosenbrock", "trigonometric",
	}
	require.Equal(t, want, problems.Names())

	all := problems.All()
	require.Len(t, all, len(want))
	for i, p := range all {
		assert.Equal(t, want[i], p.Name)
		assert.Len(t, p.Start, p.Dim, p.Name)
		if p.Root != nil {
			assert.Len(t, p.Root, p.Dim, p.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	p, err := problems.Lookup("  Rosenbrock ")
	require.NoError(t, err)
	assert.Equal(t, "rosenbrock", p.Name)

	_, err = problems.Lookup("himmelblau")
	require.ErrorIs(t, err, problems.ErrUnknownProblem)
}

func TestStartPointIsCopy(t *testing.T) {
	p, err := problems.Lookup("nlsolve")
	require.NoError(t, err)
	x := p.StartPoint()
	x[0] = 42
	assert.Equal(t, 0.1, p.Start[0])
}

// TestRootsAreZeros evaluates every closed-form root.
func TestRootsAreZeros(t *testing.T) {
	for _, p := range problems.All() {
		if p.Root == nil {
			continue
		}
		t.Run(p.Name, func(t *testing.T) {
			fx := make([]float64, p.Dim)
			require.NoError(t, p.Residual(p.Root, fx))
			assert.Less(t, matrix.NormInf(fx), 1e-12)
		})
	}
}

func TestConstantHasNoZero(t *testing.T) {
	p, err := problems.Lookup("constant")
	require.NoError(t, err)
	fx := make([]float64, 1)
	for _, x := range []float64{-1e6, 0, 3.5} {
		require.NoError(t, p.Residual([]float64{x}, fx))
		assert.Equal(t, 1.0, fx[0])
	}
}

// TestAnalyticJacobiansMatchForwardDifference checks every analytic Jacobian
// against forward differences at the start and at a shifted point.
func TestAnalyticJacobiansMatchForwardDifference(t *testing.T) {
	for _, p := range problems.All() {
		t.Run(p.Name, func(t *testing.T) {
			shifted := p.StartPoint()
			for i := range shifted {
				shifted[i] += 0.1 * float64(i+1)
			}
			for _, x := range [][]float64{p.StartPoint(), shifted} {
				analytic, err := matrix.NewDense(p.Dim, p.Dim)
				require.NoError(t, err)
				require.NoError(t, p.Jacobian(x, analytic))

				fx := make([]float64, p.Dim)
				require.NoError(t, p.Residual(x, fx))
				approx, err := matrix.NewDense(p.Dim, p.Dim)
				require.NoError(t, err)
				require.NoError(t, function.ForwardDifference(p.Residual, x, fx, approx))

				a, b := analytic.RawData(), approx.RawData()
				for i := 0; i < p.Dim; i++ {
					row := a[i*p.Dim : (i+1)*p.Dim]
					tol := 1e-5 * math.Max(1, matrix.NormInf(row))
					for j := 0; j < p.Dim; j++ {
						assert.InDeltaf(t, a[i*p.Dim+j], b[i*p.Dim+j], tol,
							"J[%d,%d] at x=%v", i, j, x)
					}
				}
			}
		})
	}
}

func TestDifferentiable(t *testing.T) {
	p, err := problems.Lookup("affine")
	require.NoError(t, err)

	d, err := p.Differentiable(true)
	require.NoError(t, err)
	assert.True(t, d.AnalyticJacobian())
	assert.Equal(t, 3, d.Dim())

	d, err = p.Differentiable(false)
	require.NoError(t, err)
	assert.False(t, d.AnalyticJacobian())
}
