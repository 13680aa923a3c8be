// SPDX-License-Identifier: MIT

package function

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvsolve/matrix"
)

// Differentiable is the normalised residual/Jacobian evaluator of an
// n-dimensional square system. Build it with NewInPlace, NewOutOfPlace or
// NewScalarArgs; the zero value is not usable.
type Differentiable struct {
	n           int
	conv        Convention
	analytic    bool // Jacobian comes from user code, not finite differences
	fusedNative bool // fused evaluator is user code, not synthesised
	jacViaFused bool // Jacobian evaluations run the fused callable

	residual ResidualFunc
	jacobian JacobianFunc
	fused    FusedFunc
}

// NewInPlace builds a Differentiable from in-place callables.
// f may be nil when fj is given; j and fj may be nil.
//
//	d, err := function.NewInPlace(2, residual, jacobian, nil)
func NewInPlace(n int, f ResidualFunc, j JacobianFunc, fj FusedFunc) (*Differentiable, error) {
	return build(n, InPlace, f, j, fj)
}

// NewOutOfPlace builds a Differentiable from callables that return fresh values.
// The same nil rules as NewInPlace apply.
func NewOutOfPlace(n int, f ResidualAllocFunc, j JacobianAllocFunc, fj FusedAllocFunc) (*Differentiable, error) {
	var (
		rf  ResidualFunc
		jf  JacobianFunc
		fjf FusedFunc
	)
	if f != nil {
		rf = residualFromAlloc(n, f)
	}
	if j != nil {
		jf = jacobianFromAlloc(n, j)
	}
	if fj != nil {
		fjf = fusedFromAlloc(n, fj)
	}

	return build(n, OutOfPlace, rf, jf, fjf)
}

// NewScalarArgs builds a Differentiable from a function of n scalar
// arguments. The Jacobian is always approximated by forward differences.
func NewScalarArgs(n int, f ScalarFunc) (*Differentiable, error) {
	if f == nil {
		return build(n, ScalarArgs, nil, nil, nil)
	}
	packed := func(x []float64) ([]float64, error) {
		// Callee must not see solver-owned storage through the variadic slice.
		args := make([]float64, len(x))
		copy(args, x)

		return f(args...)
	}

	return build(n, ScalarArgs, residualFromAlloc(n, packed), nil, nil)
}

func build(n int, conv Convention, f ResidualFunc, j JacobianFunc, fj FusedFunc) (*Differentiable, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, n)
	}
	if f == nil && fj == nil {
		return nil, ErrNoResidual
	}
	d := &Differentiable{
		n:           n,
		conv:        conv,
		analytic:    j != nil || fj != nil,
		fusedNative: fj != nil,
		jacViaFused: j == nil && fj != nil,
	}

	if f != nil {
		d.residual = f
	} else {
		d.residual = residualFromFused(n, fj)
	}

	switch {
	case j != nil:
		d.jacobian = j
	case fj != nil:
		d.jacobian = jacobianFromFused(n, fj)
	default:
		d.jacobian = finiteDifferenceJacobian(n, d.residual)
	}

	switch {
	case fj != nil:
		d.fused = fj
	case j != nil:
		d.fused = sequential(d.residual, d.jacobian)
	default:
		d.fused = finiteDifferenceFused(d.residual)
	}

	return d, nil
}

// Dim returns the system size n.
func (d *Differentiable) Dim() int { return d.n }

// Convention returns the calling convention the wrapper was built from.
func (d *Differentiable) Convention() Convention { return d.conv }

// AnalyticJacobian reports whether Jacobians come from user code.
func (d *Differentiable) AnalyticJacobian() bool { return d.analytic }

// FusedNative reports whether ResidualJacobian calls a user-supplied fused callable.
func (d *Differentiable) FusedNative() bool { return d.fusedNative }

// FusedJacobian reports whether Jacobian evaluations go through the fused
// callable, so each one also evaluates the residual.
func (d *Differentiable) FusedJacobian() bool { return d.jacViaFused }

// Residual writes f(x) into fx.
func (d *Differentiable) Residual(x, fx []float64) error {
	if err := d.checkVec("x", x); err != nil {
		return err
	}
	if err := d.checkVec("fx", fx); err != nil {
		return err
	}

	return d.classify(OpResidual, x, d.residual(x, fx))
}

// Jacobian writes J(x) into jac (n×n).
func (d *Differentiable) Jacobian(x []float64, jac *matrix.Dense) error {
	if err := d.checkVec("x", x); err != nil {
		return err
	}
	if err := d.checkJac(jac); err != nil {
		return err
	}

	return d.classify(OpJacobian, x, d.jacobian(x, jac))
}

// JacobianFrom writes J(x) into jac given fx = f(x) already evaluated.
// Forward differencing reuses fx as its baseline (n residual calls instead
// of n+1); analytic Jacobians ignore it.
func (d *Differentiable) JacobianFrom(x, fx []float64, jac *matrix.Dense) error {
	if err := d.checkVec("x", x); err != nil {
		return err
	}
	if err := d.checkVec("fx", fx); err != nil {
		return err
	}
	if err := d.checkJac(jac); err != nil {
		return err
	}
	if d.analytic {
		return d.classify(OpJacobian, x, d.jacobian(x, jac))
	}

	return d.classify(OpJacobian, x, ForwardDifference(d.residual, x, fx, jac))
}

// ResidualJacobian writes f(x) into fx and J(x) into jac.
func (d *Differentiable) ResidualJacobian(x, fx []float64, jac *matrix.Dense) error {
	if err := d.checkVec("x", x); err != nil {
		return err
	}
	if err := d.checkVec("fx", fx); err != nil {
		return err
	}
	if err := d.checkJac(jac); err != nil {
		return err
	}

	return d.classify(OpFused, x, d.fused(x, fx, jac))
}

func (d *Differentiable) checkVec(name string, v []float64) error {
	if len(v) != d.n {
		return shapeErrorf("len(%s)=%d, want %d", name, len(v), d.n)
	}

	return nil
}

func (d *Differentiable) checkJac(jac *matrix.Dense) error {
	if jac == nil {
		return shapeErrorf("nil Jacobian buffer")
	}
	if r, c := jac.Shape(); r != d.n || c != d.n {
		return shapeErrorf("Jacobian buffer %dx%d, want %dx%d", r, c, d.n, d.n)
	}

	return nil
}

// classify keeps shape and nested evaluation errors as they are and wraps
// anything else raised by user code.
func (d *Differentiable) classify(op string, x []float64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrShape) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var ee *EvaluationError
	if errors.As(err, &ee) {
		return err
	}

	return NewEvaluationError(op, x, err)
}
