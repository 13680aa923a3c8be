// Package lvsolve finds zeros of square nonlinear systems f(x) = 0,
// f: ℝⁿ → ℝⁿ, in pure Go.
//
// 🚀 What is lvsolve?
//
//	A small, deterministic solver library that brings together:
//		• Function wrappers: in-place, out-of-place and scalar-argument callables
//		• Jacobians: analytic, fused with the residual, or forward differences
//		• Trust region: dogleg steps with Jacobian column-norm autoscaling
//		• Newton: full Newton direction with a pluggable line search
//		• Traces: per-iteration residual and step norms, optional solver internals
//
// ✨ Why choose lvsolve?
//
//   - Explicit per-call configuration: no global defaults to trip over
//   - Caller-owned buffers: residuals and Jacobians are written in place
//   - Sentinel errors you can match with errors.Is / errors.As
//   - Structured logging through zap, silent by default
//
// Packages:
//
//	matrix/      - row-major Dense, vector norms, pivoted LU
//	function/    - Differentiable wrapper, EvaluationError, forward differences
//	convergence/ - thresholds, Trace, Tracker
//	linesearch/  - Searcher interface, Backtracking, Static
//	solver/      - Solve, SolveWithOptions, Method, Options, Results
//	problems/    - catalogue of classic test systems
//	cmd/lvsolve  - command-line front end (cobra, koanf, gonum/plot)
//
// Quick example:
//
//	f, _ := function.NewInPlace(2, residual, jacobian, nil)
//	res, err := solver.Solve(f, []float64{0.1, 1.2}, solver.TrustRegion)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res)
//
//	go get github.com/katalvlaran/lvsolve
package lvsolve
