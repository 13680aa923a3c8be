// SPDX-License-Identifier: MIT
package function_test

import (
	"fmt"

	"github.com/katalvlaran/lvsolve/function"
	"github.com/katalvlaran/lvsolve/matrix"
)

// ExampleNewOutOfPlace wraps a residual returning fresh slices; the Jacobian
// is approximated by forward differences.
func ExampleNewOutOfPlace() {
	d, _ := function.NewOutOfPlace(2, func(x []float64) ([]float64, error) {
		return []float64{x[0]*x[0] - 2, x[0] + x[1]}, nil
	}, nil, nil)

	fx := make([]float64, 2)
	jac, _ := matrix.NewDense(2, 2)
	_ = d.ResidualJacobian([]float64{1, 1}, fx, jac)
	fmt.Println(fx, d.AnalyticJacobian())
	fmt.Printf("%.3f %.3f\n", jac.RawData()[0], jac.RawData()[3])
	// Output:
	// [-1 2] false
	// 2.000 1.000
}
