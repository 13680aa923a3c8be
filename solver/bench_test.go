// SPDX-License-Identifier: MIT
package solver_test

import (
	"testing"

	"github.com/katalvlaran/lvsolve/solver"
)

func benchmarkSolve(b *testing.B, problem string, method solver.Method, analytic bool) {
	p, f := mustProblem(b, problem, analytic)
	x0 := p.StartPoint()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(f, x0, method); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrustRegionNLsolve(b *testing.B) {
	benchmarkSolve(b, "nlsolve", solver.TrustRegion, true)
}

func BenchmarkTrustRegionNLsolveFD(b *testing.B) {
	benchmarkSolve(b, "nlsolve", solver.TrustRegion, false)
}

func BenchmarkNewtonNLsolve(b *testing.B) {
	benchmarkSolve(b, "nlsolve", solver.Newton, true)
}

func BenchmarkTrustRegionBroyden(b *testing.B) {
	benchmarkSolve(b, "broyden-tridiagonal", solver.TrustRegion, true)
}

func BenchmarkNewtonBroyden(b *testing.B) {
	benchmarkSolve(b, "broyden-tridiagonal", solver.Newton, true)
}
