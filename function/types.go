// SPDX-License-Identifier: MIT

package function

import "github.com/katalvlaran/lvsolve/matrix"

// Convention tags the calling convention a Differentiable was built from.
type Convention int

const (
	// InPlace callables write into caller-provided buffers.
	InPlace Convention = iota
	// OutOfPlace callables return newly allocated results.
	OutOfPlace
	// ScalarArgs callables take the n coordinates as separate arguments.
	ScalarArgs
)

func (c Convention) String() string {
	switch c {
	case InPlace:
		return "in-place"
	case OutOfPlace:
		return "out-of-place"
	case ScalarArgs:
		return "scalar-args"
	default:
		return "unknown"
	}
}

// In-place callables.
type (
	ResidualFunc func(x, fx []float64) error
	JacobianFunc func(x []float64, jac *matrix.Dense) error
	FusedFunc    func(x, fx []float64, jac *matrix.Dense) error
)

// Out-of-place callables. Returned values are copied; the callee may reuse them.
type (
	ResidualAllocFunc func(x []float64) ([]float64, error)
	JacobianAllocFunc func(x []float64) (matrix.Matrix, error)
	FusedAllocFunc    func(x []float64) ([]float64, matrix.Matrix, error)
)

// ScalarFunc receives x_1..x_n as arguments and returns the residual vector.
type ScalarFunc func(args ...float64) ([]float64, error)
