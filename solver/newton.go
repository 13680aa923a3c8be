// SPDX-License-Identifier: MIT

// Package solver - Newton's method with a line search.
//
// Each iteration solves J·d = −f, then picks α along d with the configured
// linesearch.Searcher on the merit φ(α) = ½‖f(x+α·d)‖². A singular J is
// fatal (ErrSingularJacobian). Trial points with non-finite residuals have
// φ = +Inf so the searcher steps back; a non-finite accepted point is fatal.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvsolve/function"
	"github.com/katalvlaran/lvsolve/linesearch"
	"github.com/katalvlaran/lvsolve/matrix"
	"go.uber.org/zap"
)

const (
	extAlpha = "alpha"
	extMerit = "merit"
	extSlope = "slope"
)

// newtonRun carries the buffers of one Newton solve on top of state.
type newtonRun struct {
	*state
	searcher linesearch.Searcher
	dir      []float64 // Newton direction
	g        []float64 // Jᵀf
	xt       []float64 // merit trial point
	ft       []float64 // f(xt)

	lastAlpha  float64 // α of the most recent merit evaluation
	lastFinite bool    // ft at lastAlpha is finite
}

func newton(f *function.Differentiable, x0 []float64, o Options) (Results, error) {
	s, err := newState(f, x0, Newton, o)
	if err != nil {
		return Results{}, err
	}
	done, err := s.initialize()
	if err != nil {
		return Results{}, err
	}
	if done {
		return s.results(), nil
	}

	n := s.n
	r := &newtonRun{
		state:    s,
		searcher: o.searcher(),
		dir:      make([]float64, n),
		g:        make([]float64, n),
		xt:       make([]float64, n),
		ft:       make([]float64, n),
	}
	s.logger.Debug("line search", zap.String("searcher", r.searcher.Name()))
	for {
		stop, err := r.iterate()
		if err != nil {
			return Results{}, r.iterationError(err)
		}
		if stop {
			return r.results(), nil
		}
	}
}

func (r *newtonRun) iterate() (bool, error) {
	if err := r.direction(); err != nil {
		return false, err
	}
	if err := matrix.MatTVecInto(r.jac, r.fx, r.g); err != nil {
		return false, err
	}
	slope, _ := matrix.Dot(r.g, r.dir)
	value0, _ := matrix.Dot(r.fx, r.fx)
	value0 *= 0.5

	r.lastAlpha, r.lastFinite = math.NaN(), false
	alpha, err := r.searcher.Search(linesearch.Problem{
		Merit:   r.merit,
		Value0:  value0,
		Slope0:  slope,
		Initial: 1,
	})
	if err != nil {
		return false, fmt.Errorf("line search: %w", err)
	}

	copy(r.xPrev, r.x)
	if err = matrix.Axpy(alpha, r.dir, r.xPrev, r.x); err != nil {
		return false, err
	}
	if alpha == r.lastAlpha && r.lastFinite {
		copy(r.fx, r.ft)
	} else if err = r.evalFiniteResidual(r.x, r.fx); err != nil {
		return false, err
	}
	if err = r.evalJacobianAt(); err != nil {
		return false, err
	}
	r.iter++

	if ce := r.logger.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Int("iteration", r.iter),
			zap.Float64("alpha", alpha),
			zap.Float64("slope", slope),
		)
	}
	r.record(alpha, slope)

	return r.assess(), nil
}

// direction solves J·dir = −f.
func (r *newtonRun) direction() error {
	if err := r.lu.Decompose(r.jac); err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return fmt.Errorf("%w: %w", ErrSingularJacobian, err)
		}
		return err
	}
	if err := r.lu.SolveInto(r.fx, r.dir); err != nil {
		return err
	}
	for i := range r.dir {
		r.dir[i] = -r.dir[i]
	}
	if !matrix.AllFinite(r.dir) {
		return fmt.Errorf("%w: non-finite Newton direction", ErrSingularJacobian)
	}

	return nil
}

// merit evaluates φ(α) = ½‖f(x+α·dir)‖², +Inf for non-finite residuals.
func (r *newtonRun) merit(alpha float64) (float64, error) {
	if err := matrix.Axpy(alpha, r.dir, r.x, r.xt); err != nil {
		return 0, err
	}
	if err := r.evalResidual(r.xt, r.ft); err != nil {
		return 0, err
	}
	r.lastAlpha = alpha
	r.lastFinite = matrix.AllFinite(r.ft)
	if !r.lastFinite {
		return math.Inf(1), nil
	}
	v, _ := matrix.Dot(r.ft, r.ft)

	return 0.5 * v, nil
}

func (r *newtonRun) record(alpha, slope float64) {
	if !r.tracker.Enabled() {
		return
	}
	var extras map[string]float64
	if r.tracker.Extended() {
		merit, _ := matrix.Dot(r.fx, r.fx)
		extras = map[string]float64{
			extAlpha: alpha,
			extMerit: 0.5 * merit,
			extSlope: slope,
		}
	}
	r.tracker.Record(r.iter, matrix.NormInf(r.fx), r.stepNorm(), extras)
}
