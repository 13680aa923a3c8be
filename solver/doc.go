// SPDX-License-Identifier: MIT

// Package solver finds x with f(x) = 0 for square nonlinear systems.
//
// Two methods are available:
//
//   - TrustRegion (default): dogleg steps inside a trust region measured in
//     coordinates scaled by the Jacobian column norms (autoscale). A
//     singular Gauss-Newton system falls back to the Cauchy step.
//   - Newton: full Newton direction globalised by a pluggable line search
//     on the merit φ(α) = ½‖f(x+αd)‖². A singular Jacobian is fatal.
//
// Entry points:
//
//	res, err := solver.Solve(f, x0, solver.TrustRegion, solver.WithFTol(1e-10))
//	res, err := solver.SolveWithOptions(f, x0, solver.Newton, opts)
//
// Every call owns its state: options are an explicit per-call record, and
// nothing is shared between concurrent solves. A solve either returns a
// complete Results or an error (ErrShape, *function.EvaluationError,
// ErrSingularJacobian); reaching the iteration cap is reported through
// Results.Converged, not as an error.
package solver
