// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, transpose, matrix-vector products and column norms.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Purpose:
//   - Declare the kernels used by the nonlinear solvers (J·p, Jᵀ·f, column norms).
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - *Into variants write into caller-owned buffers and allocate nothing;
//     solvers call them once per iteration.
//   - All kernels use central validators and wrap via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opMatTVec   = "MatTVec"
	opColNorms  = "ColNorms"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the product a·b as a new Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b). Allocate Dense(a.Rows, b.Cols).
//   - Stage 2: i-k-j loop over flat slices when both are *Dense; otherwise i-j-k via At.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, or accessor errors, wrapped with opMul.
//
// Complexity:
//   - Time O(r*c*k), Space O(r*k).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue // skip zero for performance
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil), wrapped with opTranspose.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[i*cols+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
		}
	}

	return res, nil
}

// MatVec returns y = m·x as a newly allocated vector.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols), wrapped with opMatVec.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.Rows())
	if err := MatVecInto(m, x, y); err != nil {
		return nil, err
	}

	return y, nil
}

// MatVecInto computes dst = m·x without allocating.
// dst must not alias x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols or len(dst) != Rows).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func MatVecInto(m Matrix, x, dst []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(dst, m.Rows()); err != nil {
		return matrixErrorf(opMatVec, err)
	}

	var i, j, base int
	var acc float64
	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			dst[i] = acc
		}

		return nil
	}

	var mv float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		acc = ZeroSum
		for j = 0; j < m.Cols(); j++ {
			if mv, err = m.At(i, j); err != nil {
				return matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			acc += mv * x[j]
		}
		dst[i] = acc
	}

	return nil
}

// MatTVecInto computes dst = mᵀ·x without forming mᵀ.
// dst must not alias x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Rows or len(dst) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func MatTVecInto(m Matrix, x, dst []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(dst, m.Cols()); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	for j := range dst {
		dst[j] = ZeroSum
	}

	var i, j, base int
	var xi float64
	if d, ok := m.(*Dense); ok {
		// Row sweep keeps memory access contiguous: dst += x_i * row_i.
		for i = 0; i < d.r; i++ {
			xi = x[i]
			if xi == 0 {
				continue
			}
			base = i * d.c
			for j = 0; j < d.c; j++ {
				dst[j] += d.data[base+j] * xi
			}
		}

		return nil
	}

	var mv float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if mv, err = m.At(i, j); err != nil {
				return matrixErrorf(opMatTVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			dst[j] += mv * x[i]
		}
	}

	return nil
}

// ColNorms writes the Euclidean norm of every column of m into dst.
// Uses the scaled sum-of-squares recurrence so huge or tiny entries do not
// overflow or underflow.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(dst) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(c) on the fallback path, O(1) on *Dense.
func ColNorms(m Matrix, dst []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opColNorms, err)
	}
	if err := ValidateVecLen(dst, m.Cols()); err != nil {
		return matrixErrorf(opColNorms, err)
	}
	rows, cols := m.Rows(), m.Cols()

	var i, j int
	var v, scale, ssq, a float64
	var err error
	for j = 0; j < cols; j++ {
		scale, ssq = NormZero, 1.0
		for i = 0; i < rows; i++ {
			if d, ok := m.(*Dense); ok {
				v = d.data[i*cols+j]
			} else if v, err = m.At(i, j); err != nil {
				return matrixErrorf(opColNorms, err)
			}
			if v == 0 {
				continue
			}
			a = math.Abs(v)
			if scale < a {
				ssq = 1 + ssq*(scale/a)*(scale/a)
				scale = a
			} else {
				ssq += (a / scale) * (a / scale)
			}
		}
		dst[j] = scale * math.Sqrt(ssq)
	}

	return nil
}
