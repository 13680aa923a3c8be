// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go): operate on the flat data slice directly.
//   - RawData exposes the backing slice for solvers that own the matrix; never retain it past the owner's lifetime.
//   - DefaultValidateNaNInf is on; scratch Jacobians are created with WithNoValidateNaNInf and checked with AllFinite.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); CopyFrom/Zero: O(r*c); Col: O(r).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxCol      = "Col"      // method tag used in error wrappers
	ctxCopyFrom = "CopyFrom" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//   - Stage 3: set numeric policy from opts (default: reject NaN/Inf).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols), // make() zero-fills deterministically
		validateNaNInf: o.ValidateNaNInf,
	}, nil
}

// NewDenseFrom creates an r×c matrix from a row-major slice (copied).
//
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//   - ErrBadShape when len(data) != rows*cols.
//   - ErrNaNInf when the policy is on and data holds a non-finite value.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom: len(data)=%d, want %d: %w", len(data), rows*cols, ErrBadShape)
	}
	if m.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	copy(m.data, data)

	return m, nil
}

// NewIdentity returns the n×n identity matrix.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	// Numeric policy: optional finite-only enforcement.
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Zero resets every entry to 0 in place.
func (m *Dense) Zero() {
	for k := range m.data {
		m.data[k] = 0
	}
}

// CopyFrom overwrites m with the contents of src.
// Shapes must match; the numeric policy of m applies to the fallback path only.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, or any error returned by src.At / m.Set.
func (m *Dense) CopyFrom(src Matrix) error {
	if err := ValidateNotNil(src); err != nil {
		return fmt.Errorf("Dense.%s: %w", ctxCopyFrom, err)
	}
	if err := ValidateSameShape(m, src); err != nil {
		return fmt.Errorf("Dense.%s: %w", ctxCopyFrom, err)
	}
	// Fast-path: flat copy.
	if d, ok := src.(*Dense); ok {
		copy(m.data, d.data)

		return nil
	}

	var i, j int
	var v float64
	var err error
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if v, err = src.At(i, j); err != nil {
				return fmt.Errorf("Dense.%s: %w", ctxCopyFrom, err)
			}
			if err = m.Set(i, j, v); err != nil {
				return fmt.Errorf("Dense.%s: %w", ctxCopyFrom, err)
			}
		}
	}

	return nil
}

// RawData returns the row-major backing slice (no copy).
// Writes through the slice bypass the NaN/Inf policy.
func (m *Dense) RawData() []float64 { return m.data }

// Col copies column j into dst (len(dst) must equal Rows()).
func (m *Dense) Col(j int, dst []float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	if len(dst) != m.r {
		return denseErrorf(ctxCol, len(dst), j, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		dst[i] = m.data[i*m.c+j]
	}

	return nil
}

// String HUMAN-READABLE dump of rows for diagnostics.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
