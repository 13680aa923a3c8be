// SPDX-License-Identifier: MIT

package function

import (
	"errors"
	"fmt"
)

var (
	// ErrShape reports a length or shape disagreement between the point,
	// the residual vector and the Jacobian.
	ErrShape = errors.New("function: shape mismatch")

	// ErrNonFinite reports a NaN or ±Inf in a residual or Jacobian value.
	ErrNonFinite = errors.New("function: non-finite value")

	// ErrInvalidDimension is returned by constructors for n <= 0.
	ErrInvalidDimension = errors.New("function: dimension must be > 0")

	// ErrNoResidual is returned when neither a residual nor a fused callable is given.
	ErrNoResidual = errors.New("function: residual evaluator required")
)

// Evaluation operation tags carried by EvaluationError.Op.
const (
	OpResidual = "residual"
	OpJacobian = "jacobian"
	OpFused    = "residual+jacobian"
)

// EvaluationError wraps a failure raised while evaluating user code, with the
// point at which it happened.
type EvaluationError struct {
	Op  string    // one of OpResidual, OpJacobian, OpFused
	X   []float64 // copy of the evaluation point
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("function: %s evaluation at %v: %v", e.Op, e.X, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// NewEvaluationError copies x and wraps err. Solvers use it to report
// non-finite values they detect after a successful call:
//
//	function.NewEvaluationError(function.OpResidual, x, function.ErrNonFinite)
func NewEvaluationError(op string, x []float64, err error) *EvaluationError {
	return &EvaluationError{Op: op, X: append([]float64(nil), x...), Err: err}
}

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrShape, fmt.Sprintf(format, args...))
}
