// SPDX-License-Identifier: MIT

// Package matrix: dense vector helpers.
//
// Vectors are plain []float64. Helpers never allocate and never check for
// nil; length agreement is the caller's contract unless an error is returned.
package matrix

import (
	"fmt"
	"math"
)

const opVector = "Vector"

// Dot returns Σ a_i·b_i. Panics-free: returns ErrDimensionMismatch on length mismatch.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, matrixErrorf(opVector, fmt.Errorf("Dot: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch))
	}
	acc := ZeroSum
	for i := range a {
		acc += a[i] * b[i]
	}

	return acc, nil
}

// Norm2 returns the Euclidean norm of x using the scaled sum-of-squares
// recurrence (no intermediate overflow for entries near MaxFloat64).
func Norm2(x []float64) float64 {
	scale, ssq := NormZero, 1.0
	var a float64
	for _, v := range x {
		if v == 0 {
			continue
		}
		if math.IsNaN(v) {
			return math.NaN()
		}
		a = math.Abs(v)
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}
	if math.IsInf(scale, 1) {
		return scale
	}

	return scale * math.Sqrt(ssq)
}

// ScaledNorm2 returns ‖d∘x‖₂ (elementwise product, then Euclidean norm).
// d and x must have equal length.
func ScaledNorm2(d, x []float64) (float64, error) {
	if len(d) != len(x) {
		return 0, matrixErrorf(opVector, fmt.Errorf("ScaledNorm2: %d vs %d: %w", len(d), len(x), ErrDimensionMismatch))
	}
	scale, ssq := NormZero, 1.0
	var a float64
	for i := range x {
		a = math.Abs(d[i] * x[i])
		if a == 0 {
			continue
		}
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}

	return scale * math.Sqrt(ssq), nil
}

// NormInf returns max_i |x_i|. NaN entries propagate.
func NormInf(x []float64) float64 {
	m := NormZero
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN()
		}
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	return m
}

// Axpy computes dst = alpha·x + y elementwise. dst may alias x or y.
func Axpy(alpha float64, x, y, dst []float64) error {
	if len(x) != len(y) || len(x) != len(dst) {
		return matrixErrorf(opVector, fmt.Errorf("Axpy: %d/%d/%d: %w", len(x), len(y), len(dst), ErrDimensionMismatch))
	}
	for i := range x {
		dst[i] = alpha*x[i] + y[i]
	}

	return nil
}

// AllFinite reports whether every entry of x is neither NaN nor ±Inf.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
