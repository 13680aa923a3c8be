// SPDX-License-Identifier: MIT

// Package problems is a catalogue of small square nonlinear systems with
// analytic Jacobians, standard starting points and, where known in closed
// form, their roots.
//
// The catalogue drives the solver tests and benchmarks and backs the
// `lvsolve problems` and `lvsolve solve --problem` commands.
//
//	p, _ := problems.Lookup("rosenbrock")
//	f, _ := p.Differentiable(true)
//	res, _ := solver.Solve(f, p.StartPoint(), solver.TrustRegion)
//
// Systems (Moré, Garbow & Hillstrom numbering where applicable):
//
//	nlsolve              n=2  (x+3)(y³−7)+18, sin(y·eˣ−1); root (0, 1)
//	rosenbrock           n=2  MGH #1; root (1, 1)
//	powell-badly-scaled  n=2  MGH #3
//	helical-valley       n=3  MGH #7; root (1, 0, 0)
//	trigonometric        n=4  MGH #26; root 0
//	broyden-tridiagonal  n=5  MGH #30
//	affine               n=3  A·x − b; root (1, 2, 3)
//	constant             n=1  f ≡ 1, never zero
package problems
