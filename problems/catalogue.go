// SPDX-License-Identifier: MIT

package problems

import (
	"math"

	"github.com/katalvlaran/lvsolve/matrix"
)

var catalogue = map[string]Problem{}

func register(p Problem) {
	catalogue[p.Name] = p
}

func init() {
	register(nlsolve)
	register(rosenbrock)
	register(powellBadlyScaled)
	register(helicalValley)
	register(trigonometric)
	register(broydenTridiagonal)
	register(affine)
	register(constant)
}

var nlsolve = Problem{
	Name:        "nlsolve",
	Description: "(x+3)(y³−7)+18 = 0, sin(y·eˣ−1) = 0",
	Dim:         2,
	Start:       []float64{0.1, 1.2},
	Root:        []float64{0, 1},
	Residual: func(x, fx []float64) error {
		fx[0] = (x[0]+3)*(x[1]*x[1]*x[1]-7) + 18
		fx[1] = math.Sin(x[1]*math.Exp(x[0]) - 1)
		return nil
	},
	Jacobian: func(x []float64, jac *matrix.Dense) error {
		u := math.Exp(x[0])
		c := math.Cos(x[1]*u - 1)
		fill(jac,
			x[1]*x[1]*x[1]-7, 3*x[1]*x[1]*(x[0]+3),
			c*x[1]*u, c*u,
		)
		return nil
	},
}

var rosenbrock = Problem{
	Name:        "rosenbrock",
	Description: "1 − x₁, 10(x₂ − x₁²)",
	Dim:         2,
	Start:       []float64{-1.2, 1},
	Root:        []float64{1, 1},
	Residual: func(x, fx []float64) error {
		fx[0] = 1 - x[0]
		fx[1] = 10 * (x[1] - x[0]*x[0])
		return nil
	},
	Jacobian: func(x []float64, jac *matrix.Dense) error {
		fill(jac,
			-1, 0,
			-20*x[0], 10,
		)
		return nil
	},
}

var powellBadlyScaled = Problem{
	Name:        "powell-badly-scaled",
	Description: "10⁴x₁x₂ − 1, e^(−x₁) + e^(−x₂) − 1.0001",
	Dim:         2,
	Start:       []float64{0, 1},
	Residual: func(x, fx []float64) error {
		fx[0] = 1e4*x[0]*x[1] - 1
		fx[1] = math.Exp(-x[0]) + math.Exp(-x[1]) - 1.0001
		return nil
	},
	Jacobian: func(x []float64, jac *matrix.Dense) error {
		fill(jac,
			1e4*x[1], 1e4*x[0],
			-math.Exp(-x[0]), -math.Exp(-x[1]),
		)
		return nil
	},
}

// helicalTheta is the MGH angle function, with the jump placed on x₁ = 0.
func helicalTheta(x1, x2 float64) float64 {
	switch {
	case x1 > 0:
		return math.Atan(x2/x1) / (2 * math.Pi)
	case x1 < 0:
		return math.Atan(x2/x1)/(2*math.Pi) + 0.5
	case x2 >= 0:
		return 0.25
	default:
		return -0.25
	}
}

var helicalValley = Problem{
	Name:        "helical-valley",
	Description: "10(x₃ − 10θ), 10(‖(x₁,x₂)‖ − 1), x₃",
	Dim:         3,
	Start:       []float64{-1, 0, 0},
	Root:        []float64{1, 0, 0},
	Residual: func(x, fx []float64) error {
		fx[0] = 10 * (x[2] - 10*helicalTheta(x[0], x[1]))
		fx[1] = 10 * (math.Hypot(x[0], x[1]) - 1)
		fx[2] = x[2]
		return nil
	},
	Jacobian: func(x []float64, jac *matrix.Dense) error {
		r2 := x[0]*x[0] + x[1]*x[1]
		r := math.Sqrt(r2)
		k := 100 / (2 * math.Pi * r2)
		fill(jac,
			k*x[1], -k*x[0], 10,
			10*x[0]/r, 10*x[1]/r, 0,
			0, 0, 1,
		)
		return nil
	},
}

const trigDim = 4

var trigonometric = Problem{
	Name:        "trigonometric",
	Description: "n − Σcos xⱼ + i(1 − cos xᵢ) − sin xᵢ",
	Dim:         trigDim,
	Start:       []float64{1.0 / trigDim, 1.0 / trigDim, 1.0 / trigDim, 1.0 / trigDim},
	Root:        []float64{0, 0, 0, 0},
	Residual: func(x, fx []float64) error {
		var sum float64
		for _, v := range x {
			sum += math.Cos(v)
		}
		for i, v := range x {
			fx[i] = float64(len(x)) - sum + float64(i+1)*(1-math.Cos(v)) - math.Sin(v)
		}
		return nil
	},
	Jacobian: func(x []float64, jac *matrix.Dense) error {
		n := len(x)
		data := jac.RawData()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				data[i*n+j] = math.Sin(x[j])
			}
			data[i*n+i] += float64(i+1)*math.Sin(x[i]) - math.Cos(x[i])
		}
		return nil
	},
}

const tridiagDim = 5

var broydenTridiagonal = Problem{
	Name:        "broyden-tridiagonal",
	Description: "(3 − 2xᵢ)xᵢ − xᵢ₋₁ − 2xᵢ₊₁ + 1",
	Dim:         tridiagDim,
	Start:       []float64{-1, -1, -1, -1, -1},
	Residual: func(x, fx []float64) error {
		n := len(x)
		for i := 0; i < n; i++ {
			fx[i] = (3-2*x[i])*x[i] + 1
			if i > 0 {
				fx[i] -= x[i-1]
			}
			if i+1 < n {
				fx[i] -= 2 * x[i+1]
			}
		}
		return nil
	},
	Jacobian: func(x []float64, jac *matrix.Dense) error {
		n := len(x)
		jac.Zero()
		data := jac.RawData()
		for i := 0; i < n; i++ {
			data[i*n+i] = 3 - 4*x[i]
			if i > 0 {
				data[i*n+i-1] = -1
			}
			if i+1 < n {
				data[i*n+i+1] = -2
			}
		}
		return nil
	},
}

// affineA is symmetric positive definite; affineB = affineA·(1, 2, 3).
var (
	affineA = [9]float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	}
	affineB = [3]float64{6, 10, 8}
)

var affine = Problem{
	Name:        "affine",
	Description: "A·x − b",
	Dim:         3,
	Start:       []float64{0, 0, 0},
	Root:        []float64{1, 2, 3},
	Residual: func(x, fx []float64) error {
		for i := 0; i < 3; i++ {
			acc := -affineB[i]
			for j := 0; j < 3; j++ {
				acc += affineA[i*3+j] * x[j]
			}
			fx[i] = acc
		}
		return nil
	},
	Jacobian: func(_ []float64, jac *matrix.Dense) error {
		fill(jac, affineA[:]...)
		return nil
	},
}

var constant = Problem{
	Name:        "constant",
	Description: "f ≡ 1",
	Dim:         1,
	Start:       []float64{0},
	Residual: func(_, fx []float64) error {
		fx[0] = 1
		return nil
	},
	Jacobian: func(_ []float64, jac *matrix.Dense) error {
		jac.Zero()
		return nil
	},
}
