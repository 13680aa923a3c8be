// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvsolve/matrix"
)

// ExampleLUDecomp solves a 3×3 system with a reusable workspace.
func ExampleLUDecomp() {
	a, _ := matrix.NewDenseFrom(3, 3, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	})
	lu, _ := matrix.NewLUDecomp(3)
	if err := lu.Decompose(a); err != nil {
		fmt.Println(err)
		return
	}
	x := make([]float64, 3)
	_ = lu.SolveInto([]float64{5, -2, 9}, x)
	fmt.Printf("%.4f %.4f %.4f\n", x[0], x[1], x[2])
	// Output: 1.0000 1.0000 2.0000
}

// ExampleColNorms shows the column scaling used by trust-region methods.
func ExampleColNorms() {
	j, _ := matrix.NewDenseFrom(2, 2, []float64{3, 0, 4, 2})
	d := make([]float64, 2)
	_ = matrix.ColNorms(j, d)
	fmt.Println(d)
	// Output: [5 2]
}
