// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestLUSolveAgainstGonum cross-checks the pivoted solve with gonum's LU.
func TestLUSolveAgainstGonum(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := MustDense(t, n, n)
			fillDenseRand(t, a, int64(100+n))
			b := make([]float64, n)
			for i := range b {
				b[i] = float64(i) - float64(n)/2
			}

			lu, err := matrix.NewLUDecomp(n)
			require.NoError(t, err)
			require.Equal(t, n, lu.Dim())
			require.NoError(t, lu.Decompose(a))
			x := make([]float64, n)
			require.NoError(t, lu.SolveInto(b, x))

			var ref mat.LU
			ref.Factorize(mat.NewDense(n, n, append([]float64(nil), a.RawData()...)))
			var want mat.VecDense
			require.NoError(t, ref.SolveVecTo(&want, false, mat.NewVecDense(n, append([]float64(nil), b...))))

			requireVecInDelta(t, want.RawVector().Data, x, 1e-9)
		})
	}
}

// TestLUPivoting needs a row swap at the first column.
func TestLUPivoting(t *testing.T) {
	a := MustDenseFrom(t, 2, 2, 0, 1, 1, 0)
	lu, err := matrix.NewLUDecomp(2)
	require.NoError(t, err)
	require.NoError(t, lu.Decompose(hide{a}))

	b := []float64{3, 7}
	require.NoError(t, lu.SolveInto(b, b)) // aliased output
	require.Equal(t, []float64{7, 3}, b)
}

// TestLUSingular covers exact and relative singularity plus misuse.
func TestLUSingular(t *testing.T) {
	lu, err := matrix.NewLUDecomp(2)
	require.NoError(t, err)

	require.ErrorIs(t, lu.Decompose(MustDense(t, 2, 2)), matrix.ErrSingular)
	require.ErrorIs(t, lu.Decompose(MustDenseFrom(t, 2, 2, 1, 2, 2, 4)), matrix.ErrSingular)
	require.ErrorIs(t, lu.Decompose(MustDenseFrom(t, 2, 2, 1e10, 1, 1e10, 1+1e-12)), matrix.ErrSingular)
	require.Error(t, lu.SolveInto([]float64{1, 2}, make([]float64, 2)), "solve after failed decompose")

	require.ErrorIs(t, lu.Decompose(MustDense(t, 3, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, lu.Decompose(MustDense(t, 2, 3)), matrix.ErrNonSquare)
	require.ErrorIs(t, lu.Decompose(nil), matrix.ErrNilMatrix)

	_, err = matrix.NewLUDecomp(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestLUPivotTolerance checks that a looser tolerance flags near-singular input.
func TestLUPivotTolerance(t *testing.T) {
	a := MustDenseFrom(t, 2, 2, 1, 1, 1, 1+1e-6)

	strict, err := matrix.NewLUDecomp(2)
	require.NoError(t, err)
	require.NoError(t, strict.Decompose(a))

	loose, err := matrix.NewLUDecomp(2, matrix.WithPivotTolerance(1e-4))
	require.NoError(t, err)
	require.ErrorIs(t, loose.Decompose(a), matrix.ErrSingular)

	require.Panics(t, func() { matrix.WithPivotTolerance(-1) })
}
