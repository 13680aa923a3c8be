// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/stretchr/testify/require"
)

// TestDefaultOptions pins the documented defaults.
func TestDefaultOptions(t *testing.T) {
	o := matrix.DefaultOptions()
	require.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf)
	require.Equal(t, matrix.DefaultPivotTolerance, o.PivotTolerance)
}

// TestOptionPanics ensures nonsensical values are rejected at construction.
func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { matrix.WithPivotTolerance(math.NaN()) })
	require.Panics(t, func() { matrix.WithPivotTolerance(math.Inf(1)) })
	require.NotPanics(t, func() { matrix.WithPivotTolerance(0) })
}

// TestOptionOrder checks that later options win.
func TestOptionOrder(t *testing.T) {
	m, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}
