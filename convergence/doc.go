// SPDX-License-Identifier: MIT

// Package convergence decides when a nonlinear solve stops and records the
// per-iteration history.
//
// Termination rule, evaluated after each accepted iterate:
//
//	x-converged  ⇔ XTol > 0 and ‖x − x_prev‖₂ < XTol
//	f-converged  ⇔ ‖f(x)‖∞ < FTol
//	limit        ⇔ iteration ≥ Iterations
//
// Convergence is tested strictly before the limit, so a solve that converges
// on its last allowed iteration still reports success. Reaching the limit is
// a normal outcome, not an error.
//
// Tracker records one Entry per iteration. Storing, showing (structured zap
// logging) and extended solver-internal scalars are independent switches.
package convergence
