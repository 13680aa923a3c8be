// SPDX-License-Identifier: MIT

package convergence

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvsolve/matrix"
)

// ErrBadThresholds is returned by Thresholds.Validate.
var ErrBadThresholds = errors.New("convergence: invalid thresholds")

// Thresholds bundles the stopping parameters.
type Thresholds struct {
	XTol       float64 // 0 disables the step test
	FTol       float64 // residual ∞-norm threshold
	Iterations int     // iteration cap
}

// Validate rejects negative or non-finite tolerances and a cap below 1.
func (t Thresholds) Validate() error {
	if t.XTol < 0 || math.IsNaN(t.XTol) || math.IsInf(t.XTol, 0) {
		return fmt.Errorf("%w: xtol=%g", ErrBadThresholds, t.XTol)
	}
	if t.FTol < 0 || math.IsNaN(t.FTol) || math.IsInf(t.FTol, 0) {
		return fmt.Errorf("%w: ftol=%g", ErrBadThresholds, t.FTol)
	}
	if t.Iterations < 1 {
		return fmt.Errorf("%w: iterations=%d", ErrBadThresholds, t.Iterations)
	}

	return nil
}

// Assess applies the x and f tests to an accepted iterate.
// x and xPrev must have equal length; NaN norms never converge.
func Assess(x, xPrev, fx []float64, th Thresholds) (xConverged, fConverged bool) {
	if th.XTol > 0 {
		xConverged = stepNorm(x, xPrev) < th.XTol
	}
	fConverged = matrix.NormInf(fx) < th.FTol

	return xConverged, fConverged
}

// FConverged applies only the residual test (used before the first step).
func FConverged(fx []float64, th Thresholds) bool {
	return matrix.NormInf(fx) < th.FTol
}

// LimitReached reports whether iter has hit the cap.
func (t Thresholds) LimitReached(iter int) bool {
	return iter >= t.Iterations
}

func stepNorm(x, xPrev []float64) float64 {
	var s float64
	for i := range x {
		d := x[i] - xPrev[i]
		s += d * d
	}

	return math.Sqrt(s)
}
