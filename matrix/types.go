// SPDX-License-Identifier: MIT

// Package matrix: the storage-agnostic Matrix contract.
package matrix

// Matrix is a mutable rows×cols array of float64.
//
// Solvers own their Jacobians as *Dense; the interface exists for
// out-of-place user Jacobians, which may return any implementation.
// Kernels take a flat fast path for *Dense and fall back to At/Set.
type Matrix interface {
	// Rows and Cols report the shape; both are > 0 for valid matrices.
	Rows() int
	Cols() int

	// At reads entry (i, j), or returns ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set writes entry (i, j). Implementations may also enforce a numeric
	// policy and return ErrNaNInf.
	Set(i, j int, v float64) error
}
