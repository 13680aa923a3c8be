// SPDX-License-Identifier: MIT

// Package solver - trust-region dogleg method.
//
// Each iteration:
//  1. Compute the dogleg step p with ‖D·p‖₂ ≤ Δ (dogleg.go).
//  2. Evaluate f at x+p; ρ = actual / predicted reduction of ½‖f‖².
//  3. Accept when ρ > acceptRatio; refresh J (and D when autoscaling).
//  4. Shrink Δ when ρ < shrinkBelow, grow it up to MaxRadius when ρ > growAbove
//     and the step reached the boundary.
//
// Rejected trials count as iterations and leave both convergence flags false.
package solver

import (
	"math"

	"github.com/katalvlaran/lvsolve/function"
	"github.com/katalvlaran/lvsolve/matrix"
	"go.uber.org/zap"
)

const (
	acceptRatio    = 1e-4
	shrinkBelow    = 0.25
	growAbove      = 0.75
	shrinkFactor   = 0.5
	growFactor     = 2.0
	boundaryFrac   = 0.99 // ‖D·p‖ ≥ boundaryFrac·Δ counts as a boundary step
	scaleDecay     = 0.1  // autoscale lower bound relative to the previous D
	extRadius      = "radius"
	extNewRadius   = "new_radius"
	extScaledStep  = "scaled_step"
	extRatio       = "ratio"
	extAccepted    = "accepted"
	extGaussNewton = "gauss_newton"
	extFallback    = "cauchy_fallback"
)

// trustRegionRun carries the buffers of one trust-region solve on top of state.
type trustRegionRun struct {
	*state
	d      []float64 // scaling diagonal
	cn     []float64 // column norms scratch
	p      []float64 // trial step
	xt     []float64 // trial point
	ft     []float64 // f(xt)
	jp     []float64 // J·p
	delta  float64
	dogleg *dogleg
}

func trustRegion(f *function.Differentiable, x0 []float64, o Options) (Results, error) {
	s, err := newState(f, x0, TrustRegion, o)
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
	r := &trustRegionRun{
		state:  s,
		d:      make([]float64, n),
		cn:     make([]float64, n),
		p:      make([]float64, n),
		xt:     make([]float64, n),
		ft:     make([]float64, n),
		jp:     make([]float64, n),
		dogleg: newDogleg(n),
	}
	if err = r.initScaling(); err != nil {
		return Results{}, err
	}
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

// initScaling sets D from the initial Jacobian and Δ = factor·‖D·x0‖
// (factor alone when that norm is 0), capped at MaxRadius.
func (r *trustRegionRun) initScaling() error {
	if r.opts.Autoscale {
		if err := matrix.ColNorms(r.jac, r.d); err != nil {
			return err
		}
		for j, v := range r.d {
			if v == 0 {
				r.d[j] = 1
			}
		}
	} else {
		for j := range r.d {
			r.d[j] = 1
		}
	}

	xs, err := matrix.ScaledNorm2(r.d, r.x)
	if err != nil {
		return err
	}
	r.delta = r.opts.Factor * xs
	if r.delta == 0 {
		r.delta = r.opts.Factor
	}
	r.delta = math.Min(r.delta, r.opts.MaxRadius)

	return nil
}

// iterate performs one trial and reports whether the loop must stop.
func (r *trustRegionRun) iterate() (bool, error) {
	info, err := r.dogleg.step(r.jac, r.lu, r.fx, r.d, r.delta, r.p)
	if err != nil {
		return false, err
	}
	if info.singular {
		r.logger.Debug("singular Gauss-Newton system, using Cauchy step",
			zap.Int("iteration", r.iter+1))
	}

	if err = matrix.Axpy(1, r.p, r.x, r.xt); err != nil {
		return false, err
	}
	if err = r.evalFiniteResidual(r.xt, r.ft); err != nil {
		return false, err
	}
	if err = matrix.MatVecInto(r.jac, r.p, r.jp); err != nil {
		return false, err
	}
	rho := r.ratio()

	radius := r.delta
	accepted := rho > acceptRatio
	if accepted {
		copy(r.xPrev, r.x)
		copy(r.x, r.xt)
		copy(r.fx, r.ft)
		if err = r.evalJacobianAt(); err != nil {
			return false, err
		}
		if r.opts.Autoscale {
			if err = r.updateScaling(); err != nil {
				return false, err
			}
		}
	}
	r.iter++

	switch {
	case rho < shrinkBelow:
		r.delta *= shrinkFactor
	case rho > growAbove && info.scaledNorm >= boundaryFrac*radius:
		r.delta = math.Min(growFactor*r.delta, r.opts.MaxRadius)
	}

	if ce := r.logger.Check(zap.DebugLevel, "trial"); ce != nil {
		ce.Write(
			zap.Int("iteration", r.iter),
			zap.Float64("radius", radius),
			zap.Float64("ratio", rho),
			zap.Bool("accepted", accepted),
		)
	}
	r.record(accepted, radius, rho, info)

	if accepted {
		return r.assess(), nil
	}
	r.xConv, r.fConv = false, false

	return r.limit(), nil
}

// ratio returns actual/predicted reduction of ½‖f‖², or 0 when the model
// predicts no decrease. The prediction is expanded as −fᵀJp − ½‖Jp‖² to
// avoid subtracting two nearly equal norms.
func (r *trustRegionRun) ratio() float64 {
	fTf, _ := matrix.Dot(r.fx, r.fx)
	ftTft, _ := matrix.Dot(r.ft, r.ft)
	fTjp, _ := matrix.Dot(r.fx, r.jp)
	jpTjp, _ := matrix.Dot(r.jp, r.jp)

	predicted := -fTjp - 0.5*jpTjp
	if !(predicted > 0) {
		return 0
	}
	actual := 0.5 * (fTf - ftTft)

	return actual / predicted
}

// updateScaling applies D_j ← max(scaleDecay·D_j, ‖J_{:,j}‖).
func (r *trustRegionRun) updateScaling() error {
	if err := matrix.ColNorms(r.jac, r.cn); err != nil {
		return err
	}
	for j := range r.d {
		r.d[j] = math.Max(scaleDecay*r.d[j], r.cn[j])
	}

	return nil
}

func (r *trustRegionRun) record(accepted bool, radius, rho float64, info doglegInfo) {
	if !r.tracker.Enabled() {
		return
	}
	step := 0.0
	if accepted {
		step = r.stepNorm()
	}
	var extras map[string]float64
	if r.tracker.Extended() {
		extras = map[string]float64{
			extRadius:      radius,
			extNewRadius:   r.delta,
			extScaledStep:  info.scaledNorm,
			extRatio:       rho,
			extAccepted:    boolFloat(accepted),
			extGaussNewton: boolFloat(info.kind == stepGaussNewton),
			extFallback:    boolFloat(info.singular),
		}
	}
	r.tracker.Record(r.iter, matrix.NormInf(r.fx), step, extras)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
