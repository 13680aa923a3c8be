// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	dense := func(r, c int) matrix.Matrix { return MustDense(t, r, c) }
	var typedNil *matrix.Dense

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, dense(2, 2), matrix.ErrNilMatrix},
		{"second typed nil", dense(2, 2), typedNil, matrix.ErrNilMatrix},
		{"equal 2x3", dense(2, 3), dense(2, 3), nil},
		{"row mismatch", dense(2, 3), dense(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", dense(2, 3), dense(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

// TestValidateSquareAndVec covers square, vector-length and Mul compatibility checks.
func TestValidateSquareAndVec(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateSquare(MustDense(t, 3, 3)))
	require.ErrorIs(t, matrix.ValidateSquare(MustDense(t, 2, 3)), matrix.ErrNonSquare)

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 3, 1)))
	require.ErrorIs(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
}
