// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the solver-facing kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvsolve/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{16, 64, 256}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkF float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			B := MustDense(b, n, n)
			fillDenseRand(b, A, 1337)
			fillDenseRand(b, B, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMatTVecInto(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			fillDenseRand(b, A, 7)
			x := make([]float64, n)
			for i := range x {
				x[i] = float64(i)
			}
			dst := make([]float64, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.MatTVecInto(A, x, dst); err != nil {
					b.Fatal(err)
				}
			}
			sinkF = dst[0]
		})
	}
}

func BenchmarkLUDecomposeSolve(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := diagDominant(b, n, 99)
			lu, err := matrix.NewLUDecomp(n)
			if err != nil {
				b.Fatal(err)
			}
			rhs := make([]float64, n)
			x := make([]float64, n)
			for i := range rhs {
				rhs[i] = 1
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err = lu.Decompose(A); err != nil {
					b.Fatal(err)
				}
				if err = lu.SolveInto(rhs, x); err != nil {
					b.Fatal(err)
				}
			}
			sinkF = x[0]
		})
	}
}
