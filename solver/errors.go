// SPDX-License-Identifier: MIT

package solver

import (
	"errors"

	"github.com/katalvlaran/lvsolve/function"
)

var (
	// ErrSingularJacobian is returned by the Newton method when J·d = −f cannot be solved.
	ErrSingularJacobian = errors.New("solver: singular Jacobian")

	// ErrUnknownMethod is returned for a Method outside the defined set.
	ErrUnknownMethod = errors.New("solver: unknown method")

	// ErrBadOptions is returned by Options.Validate.
	ErrBadOptions = errors.New("solver: invalid options")

	// ErrNilFunction is returned when no Differentiable is given.
	ErrNilFunction = errors.New("solver: nil function")
)

// Re-exported from package function so callers can match without importing it.
var (
	ErrShape     = function.ErrShape
	ErrNonFinite = function.ErrNonFinite
)
