// SPDX-License-Identifier: MIT

// Package matrix - reusable LU factorisation with partial pivoting.
//
// Purpose:
//   - Solve A·x = b for square A once per solver iteration without
//     reallocating: the workspace is sized once by NewLUDecomp and reused.
//   - Detect numerical singularity relative to the scale of A instead of
//     dividing by a tiny pivot.
//
// Implementation:
//   - PA = LU stored compactly in one row-major buffer: strictly lower part
//     holds L (unit diagonal implied), upper part holds U.
//   - Row k swaps with the row holding the largest |a_ik| for i ≥ k.
//
// Complexity quicksheet:
//   - Decompose: O(n³) time, O(1) extra space; SolveInto: O(n²) time, O(1) extra.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

const (
	opLU      = "LU"
	opLUSolve = "LU.Solve"
)

// errNotDecomposed is returned by SolveInto before a successful Decompose.
var errNotDecomposed = errors.New("matrix: LU workspace holds no factorisation")

// LUDecomp is a reusable LU workspace for n×n systems.
// The zero value is not usable; construct with NewLUDecomp.
type LUDecomp struct {
	n     int
	lu    []float64 // packed L\U, row-major
	piv   []int     // piv[k] = original row now at position k
	tol   float64   // relative pivot tolerance
	valid bool      // last Decompose succeeded
}

// NewLUDecomp allocates a workspace for n×n matrices.
//
// Errors:
//   - ErrInvalidDimensions if n <= 0.
func NewLUDecomp(n int, opts ...Option) (*LUDecomp, error) {
	if n <= 0 {
		return nil, matrixErrorf(opLU, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)
	tol := o.PivotTolerance
	if tol == 0 {
		tol = eps
	}

	return &LUDecomp{
		n:   n,
		lu:  make([]float64, n*n),
		piv: make([]int, n),
		tol: tol,
	}, nil
}

// eps is the float64 machine epsilon (2⁻⁵²).
const eps = 2.220446049250313e-16

// Dim returns the system size the workspace was built for.
func (f *LUDecomp) Dim() int { return f.n }

// Decompose factorises m into the workspace, overwriting any previous factorisation.
//
// Behavior highlights:
//   - m is never mutated.
//   - A pivot is treated as zero when |p| <= tol·n·max|a_ij|; an all-zero
//     matrix is always singular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (size != Dim()).
//   - ErrNaNInf when m holds a non-finite value.
//   - ErrSingular, with the failing column in the message.
func (f *LUDecomp) Decompose(m Matrix) error {
	f.valid = false
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opLU, err)
	}
	n := f.n
	if m.Rows() != n {
		return matrixErrorf(opLU, fmt.Errorf("size %d, workspace %d: %w", m.Rows(), n, ErrDimensionMismatch))
	}

	// Stage 1: load A into the packed buffer and measure its magnitude.
	var i, j, k int
	if d, ok := m.(*Dense); ok {
		copy(f.lu, d.data)
	} else {
		var v float64
		var err error
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return matrixErrorf(opLU, err)
				}
				f.lu[i*n+j] = v
			}
		}
	}
	amax := NormZero
	for _, v := range f.lu {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return matrixErrorf(opLU, ErrNaNInf)
		}
		if a := math.Abs(v); a > amax {
			amax = a
		}
	}
	threshold := f.tol * float64(n) * amax
	for i = 0; i < n; i++ {
		f.piv[i] = i
	}

	// Stage 2: Gaussian elimination with partial pivoting.
	var p int
	var pmax, pivot, factor float64
	for k = 0; k < n; k++ {
		p, pmax = k, math.Abs(f.lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if a := math.Abs(f.lu[i*n+k]); a > pmax {
				p, pmax = i, a
			}
		}
		if pmax <= threshold {
			return matrixErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				f.lu[k*n+j], f.lu[p*n+j] = f.lu[p*n+j], f.lu[k*n+j]
			}
			f.piv[k], f.piv[p] = f.piv[p], f.piv[k]
		}
		pivot = f.lu[k*n+k]
		for i = k + 1; i < n; i++ {
			factor = f.lu[i*n+k] / pivot
			f.lu[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				f.lu[i*n+j] -= factor * f.lu[k*n+j]
			}
		}
	}
	f.valid = true

	return nil
}

// SolveInto solves A·x = b using the last factorisation. x may alias b.
//
// Errors:
//   - ErrDimensionMismatch when len(b) or len(x) != Dim().
//   - an internal error when no successful Decompose preceded the call.
func (f *LUDecomp) SolveInto(b, x []float64) error {
	if !f.valid {
		return matrixErrorf(opLUSolve, errNotDecomposed)
	}
	n := f.n
	if len(b) != n || len(x) != n {
		return matrixErrorf(opLUSolve, fmt.Errorf("len(b)=%d len(x)=%d n=%d: %w", len(b), len(x), n, ErrDimensionMismatch))
	}

	// Forward substitution reads b in pivot order while writing x, so an
	// aliased b is copied once.
	var y []float64
	if n > 0 && &x[0] == &b[0] {
		y = make([]float64, n)
		copy(y, b)
	} else {
		y = b
	}
	var i, j int
	var sum float64
	// Forward substitution: L·z = P·b (unit diagonal).
	for i = 0; i < n; i++ {
		sum = y[f.piv[i]]
		for j = 0; j < i; j++ {
			sum -= f.lu[i*n+j] * x[j]
		}
		x[i] = sum
	}
	// Back substitution: U·x = z.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= f.lu[i*n+j] * x[j]
		}
		x[i] = sum / f.lu[i*n+i]
	}

	return nil
}
