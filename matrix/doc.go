// SPDX-License-Identifier: MIT

// Package matrix is the dense linear-algebra substrate used by the solvers.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional NaN/Inf rejection policy.
//   - Allocation-free kernels for the inner loops of Newton-type methods
//     (MatVecInto, MatTVecInto, ColNorms) next to their allocating
//     counterparts (Mul, Transpose, MatVec).
//   - Vector helpers (Dot, Norm2, NormInf, Axpy, ScaledNorm2, AllFinite).
//   - LUDecomp, a reusable LU factorisation with partial pivoting that
//     reports ErrSingular instead of producing garbage on rank-deficient input.
//
// All public functions return sentinel errors (see errors.go) wrapped with
// call-site context; match them with errors.Is.
//
// Matrices here are small and dense: every kernel is O(n²) or O(n³) and is
// meant for systems of up to a few hundred unknowns.
package matrix
