// SPDX-License-Identifier: MIT

// Package solver - unified dispatcher.
//
// Solve and SolveWithOptions validate the request once and route to the
// method implementation. Validation order: function → options → x0 shape.
package solver

import (
	"fmt"

	"github.com/katalvlaran/lvsolve/function"
)

// Solve runs method from x0 with DefaultOptions overridden by opts.
func Solve(f *function.Differentiable, x0 []float64, method Method, opts ...Option) (Results, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return SolveWithOptions(f, x0, method, o)
}

// SolveWithOptions runs method from x0 with an explicit options record.
//
// Errors:
//   - ErrNilFunction, ErrBadOptions, ErrUnknownMethod.
//   - ErrShape when len(x0) or a callable's output size disagrees with f.Dim().
//   - *function.EvaluationError when user code fails or returns NaN/Inf.
//   - ErrSingularJacobian (Newton only).
func SolveWithOptions(f *function.Differentiable, x0 []float64, method Method, o Options) (Results, error) {
	if f == nil {
		return Results{}, ErrNilFunction
	}
	if err := o.Validate(); err != nil {
		return Results{}, err
	}
	if len(x0) != f.Dim() {
		return Results{}, fmt.Errorf("%w: len(x0)=%d, want %d", ErrShape, len(x0), f.Dim())
	}

	switch method {
	case TrustRegion:
		return trustRegion(f, x0, o)
	case Newton:
		return newton(f, x0, o)
	default:
		return Results{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}
}
