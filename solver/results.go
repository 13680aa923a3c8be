// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvsolve/convergence"
)

// Results summarises one completed solve. Slices are owned by the Results
// and never alias solver buffers or caller input.
//
// ResidualCalls counts every residual evaluation, including the n per
// Jacobian spent by forward differencing. A fused evaluation counts once
// in each counter.
type Results struct {
	Method        Method            `json:"method" yaml:"method"`
	Description   string            `json:"description" yaml:"description"`
	InitialX      []float64         `json:"initial_x" yaml:"initial_x"`
	Zero          []float64         `json:"zero" yaml:"zero"`
	Residual      []float64         `json:"residual" yaml:"residual"`
	ResidualNorm  float64           `json:"residual_norm" yaml:"residual_norm"` // ‖Residual‖∞
	Iterations    int               `json:"iterations" yaml:"iterations"`
	XConverged    bool              `json:"x_converged" yaml:"x_converged"`
	XTol          float64           `json:"xtol" yaml:"xtol"`
	FConverged    bool              `json:"f_converged" yaml:"f_converged"`
	FTol          float64           `json:"ftol" yaml:"ftol"`
	Trace         convergence.Trace `json:"trace,omitempty" yaml:"trace,omitempty"`
	ResidualCalls int               `json:"residual_calls" yaml:"residual_calls"`
	JacobianCalls int               `json:"jacobian_calls" yaml:"jacobian_calls"`
}

// Converged reports x- or f-convergence.
func (r Results) Converged() bool {
	return r.XConverged || r.FConverged
}

// String renders a multi-line summary.
func (r Results) String() string {
	var b strings.Builder
	b.WriteString("Results of Nonlinear Solver Algorithm\n")
	fmt.Fprintf(&b, " * Algorithm: %s\n", r.Description)
	fmt.Fprintf(&b, " * Starting Point: %v\n", r.InitialX)
	fmt.Fprintf(&b, " * Zero: %v\n", r.Zero)
	fmt.Fprintf(&b, " * Inf-norm of residuals: %f\n", r.ResidualNorm)
	fmt.Fprintf(&b, " * Iterations: %d\n", r.Iterations)
	fmt.Fprintf(&b, " * Convergence: %t\n", r.Converged())
	fmt.Fprintf(&b, "   * |x - x'| < %.1e: %t\n", r.XTol, r.XConverged)
	fmt.Fprintf(&b, "   * |f(x)| < %.1e: %t\n", r.FTol, r.FConverged)
	fmt.Fprintf(&b, " * Function Calls (f): %d\n", r.ResidualCalls)
	fmt.Fprintf(&b, " * Jacobian Calls (df/dx): %d", r.JacobianCalls)

	return b.String()
}
