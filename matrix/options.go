// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy.
// This file defines:
//   - Option / Options (functional options),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	DefaultValidateNaNInf = true

	// DefaultPivotTolerance is the relative pivot threshold used by LUDecomp.
	// A pivot p is treated as zero when |p| <= tol * n * max|a_ij|.
	// Zero means "machine epsilon".
	DefaultPivotTolerance = 0.0
)

const (
	panicPivotToleranceInvalid = "matrix: WithPivotTolerance: tol must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options holds the numeric policy for Dense and LUDecomp.
type Options struct {
	// ValidateNaNInf rejects NaN/±Inf in Dense.Set when true.
	ValidateNaNInf bool

	// PivotTolerance is the relative singularity threshold for LUDecomp.
	PivotTolerance float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ValidateNaNInf: DefaultValidateNaNInf,
		PivotTolerance: DefaultPivotTolerance,
	}
}

// WithNoValidateNaNInf allows NaN/Inf to be stored via Set.
// Solvers use this for scratch Jacobians that are checked in bulk with AllFinite.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.ValidateNaNInf = false }
}

// WithValidateNaNInf restores the strict finite-only policy.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.ValidateNaNInf = true }
}

// WithPivotTolerance sets the relative pivot threshold for LUDecomp.
// Panics if tol is negative, NaN or Inf.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicPivotToleranceInvalid)
	}

	return func(o *Options) { o.PivotTolerance = tol }
}

// gatherOptions applies opts over DefaultOptions in order.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
