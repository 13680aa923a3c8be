// SPDX-License-Identifier: MIT

package function

import (
	"math"

	"github.com/katalvlaran/lvsolve/matrix"
)

// sqrtEps is √ε for float64, the forward-difference relative step.
var sqrtEps = math.Sqrt(2.220446049250313e-16)

// Step returns the forward-difference step for a coordinate of value xj:
// √ε·max(|xj|, 1).
func Step(xj float64) float64 {
	return sqrtEps * math.Max(math.Abs(xj), 1)
}

// ForwardDifference approximates J(x) column by column:
//
//	J[:,j] ≈ (f(x + h_j e_j) − fx0) / h_j,  h_j = Step(x_j)
//
// fx0 must hold f(x). Exactly n residual evaluations are made. The step
// actually applied is (x_j + h_j) − x_j so the divisor matches the
// representable perturbation. x is not modified. Results are written through
// the raw buffer; callers check finiteness.
func ForwardDifference(f ResidualFunc, x, fx0 []float64, jac *matrix.Dense) error {
	n := len(x)
	if len(fx0) != n {
		return shapeErrorf("len(fx0)=%d, want %d", len(fx0), n)
	}
	if jac == nil || jac.Rows() != n || jac.Cols() != n {
		return shapeErrorf("Jacobian buffer does not match n=%d", n)
	}

	xp := make([]float64, n)
	fp := make([]float64, n)
	copy(xp, x)
	data := jac.RawData()

	var i, j int
	var h float64
	for j = 0; j < n; j++ {
		xp[j] = x[j] + Step(x[j])
		h = xp[j] - x[j]
		if err := f(xp, fp); err != nil {
			return err
		}
		for i = 0; i < n; i++ {
			data[i*n+j] = (fp[i] - fx0[i]) / h
		}
		xp[j] = x[j]
	}

	return nil
}

// finiteDifferenceJacobian evaluates the baseline itself: n+1 residual calls.
func finiteDifferenceJacobian(n int, f ResidualFunc) JacobianFunc {
	return func(x []float64, jac *matrix.Dense) error {
		fx0 := make([]float64, n)
		if err := f(x, fx0); err != nil {
			return err
		}

		return ForwardDifference(f, x, fx0, jac)
	}
}

// finiteDifferenceFused reuses the residual it writes into fx as the baseline.
func finiteDifferenceFused(f ResidualFunc) FusedFunc {
	return func(x, fx []float64, jac *matrix.Dense) error {
		if err := f(x, fx); err != nil {
			return err
		}

		return ForwardDifference(f, x, fx, jac)
	}
}
