// SPDX-License-Identifier: MIT

// Package linesearch provides step-length selectors for Newton-type solvers.
//
// A Searcher receives a one-dimensional merit function φ(α) along a fixed
// direction, together with φ(0) and φ'(0), and returns a step length α > 0.
// Solvers depend only on the Searcher interface.
//
// Implementations:
//
//   - Backtracking: Armijo sufficient decrease φ(α) ≤ φ(0) + c₁·α·φ'(0),
//     shrinking α by safeguarded quadratic (first step) and cubic (later
//     steps) interpolation.
//   - Static: always returns the initial step without evaluating φ.
package linesearch
