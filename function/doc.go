// SPDX-License-Identifier: MIT

// Package function normalises user-supplied residual and Jacobian code into
// one evaluation contract used by every solver.
//
// A caller may provide any subset of:
//
//   - in-place callables that write into caller-owned buffers
//     (ResidualFunc, JacobianFunc, FusedFunc);
//   - out-of-place callables that return fresh values
//     (ResidualAllocFunc, JacobianAllocFunc, FusedAllocFunc);
//   - a scalar-argument function of fixed arity n (ScalarFunc).
//
// The constructors resolve the supplied subset once into a Differentiable
// exposing Residual, Jacobian and ResidualJacobian. A missing Jacobian is
// replaced by forward differencing (see ForwardDifference); a missing fused
// evaluator is synthesised as residual-then-Jacobian.
//
// Buffer contract: fx, jac and x passed to the evaluators must not alias one
// another. The evaluators write every entry of the output buffers.
//
// Errors raised by user callables are returned as *EvaluationError carrying a
// copy of the offending point. Outputs of the wrong size are reported as
// ErrShape. A Differentiable is read-only after construction and may be
// reused sequentially; it is safe for concurrent use only when the wrapped
// callables are.
package function
