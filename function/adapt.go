// SPDX-License-Identifier: MIT

package function

import (
	"sync"

	"github.com/katalvlaran/lvsolve/matrix"
)

// Adapters from the out-of-place and fused shapes to the in-place contract.
// They return user errors untouched; Differentiable.classify wraps them.

func residualFromAlloc(n int, f ResidualAllocFunc) ResidualFunc {
	return func(x, fx []float64) error {
		v, err := f(x)
		if err != nil {
			return err
		}
		if len(v) != n {
			return shapeErrorf("residual returned %d values, want %d", len(v), n)
		}
		copy(fx, v)

		return nil
	}
}

func jacobianFromAlloc(n int, j JacobianAllocFunc) JacobianFunc {
	return func(x []float64, jac *matrix.Dense) error {
		m, err := j(x)
		if err != nil {
			return err
		}

		return copyJacobian(n, m, jac)
	}
}

func fusedFromAlloc(n int, fj FusedAllocFunc) FusedFunc {
	return func(x, fx []float64, jac *matrix.Dense) error {
		v, m, err := fj(x)
		if err != nil {
			return err
		}
		if len(v) != n {
			return shapeErrorf("residual returned %d values, want %d", len(v), n)
		}
		if err = copyJacobian(n, m, jac); err != nil {
			return err
		}
		copy(fx, v)

		return nil
	}
}

// copyJacobian writes m into jac after checking its shape. Solver buffers
// carry no NaN/Inf policy, so non-finite entries reach the solver's check.
func copyJacobian(n int, m matrix.Matrix, jac *matrix.Dense) error {
	if matrix.ValidateNotNil(m) != nil {
		return shapeErrorf("Jacobian returned nil matrix")
	}
	if m.Rows() != n || m.Cols() != n {
		return shapeErrorf("Jacobian returned %dx%d, want %dx%d", m.Rows(), m.Cols(), n, n)
	}

	return jac.CopyFrom(m)
}

// residualFromFused discards the Jacobian half of fj. The scratch matrix is
// pooled so repeated residual calls do not allocate n² values each, while
// concurrent solves sharing the Differentiable still get their own buffer.
func residualFromFused(n int, fj FusedFunc) ResidualFunc {
	scratch := sync.Pool{New: func() any {
		m, _ := matrix.NewDense(n, n, matrix.WithNoValidateNaNInf())
		return m
	}}

	return func(x, fx []float64) error {
		jac := scratch.Get().(*matrix.Dense)
		defer scratch.Put(jac)

		return fj(x, fx, jac)
	}
}

// jacobianFromFused discards the residual half of fj into a pooled vector.
func jacobianFromFused(n int, fj FusedFunc) JacobianFunc {
	scratch := sync.Pool{New: func() any {
		v := make([]float64, n)
		return &v
	}}

	return func(x []float64, jac *matrix.Dense) error {
		fx := scratch.Get().(*[]float64)
		defer scratch.Put(fx)

		return fj(x, *fx, jac)
	}
}

// sequential synthesises a fused evaluator as two separate calls.
func sequential(f ResidualFunc, j JacobianFunc) FusedFunc {
	return func(x, fx []float64, jac *matrix.Dense) error {
		if err := f(x, fx); err != nil {
			return err
		}

		return j(x, jac)
	}
}
