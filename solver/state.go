// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvsolve/convergence"
	"github.com/katalvlaran/lvsolve/function"
	"github.com/katalvlaran/lvsolve/matrix"
	"go.uber.org/zap"
)

// phase is the solver state machine position.
type phase int

const (
	phaseInitializing phase = iota
	phaseIterating
	phaseConverged
	phaseMaxIterations
)

func (p phase) String() string {
	switch p {
	case phaseInitializing:
		return "initializing"
	case phaseIterating:
		return "iterating"
	case phaseConverged:
		return "converged"
	case phaseMaxIterations:
		return "max_iterations"
	default:
		return "unknown"
	}
}

// state is the mutable per-call data shared by both methods.
// It is created by newState and discarded when the solve returns.
type state struct {
	f      *function.Differentiable
	opts   Options
	method Method
	logger *zap.Logger
	n      int

	x0    []float64 // caller's start, copied
	x     []float64
	xPrev []float64
	fx    []float64
	jac   *matrix.Dense
	lu    *matrix.LUDecomp

	iter   int
	fCalls int
	jCalls int
	xConv  bool
	fConv  bool
	phase  phase

	th      convergence.Thresholds
	tracker *convergence.Tracker
}

func newState(f *function.Differentiable, x0 []float64, method Method, o Options) (*state, error) {
	n := f.Dim()
	jac, err := matrix.NewDense(n, n, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	lu, err := matrix.NewLUDecomp(n, matrix.WithPivotTolerance(o.PivotTolerance))
	if err != nil {
		return nil, err
	}
	logger := o.logger().With(zap.Stringer("method", method))
	s := &state{
		f:      f,
		opts:   o,
		method: method,
		logger: logger,
		n:      n,
		x0:     append([]float64(nil), x0...),
		x:      append([]float64(nil), x0...),
		xPrev:  make([]float64, n),
		fx:     make([]float64, n),
		jac:    jac,
		lu:     lu,
		th:     o.thresholds(),
		tracker: convergence.NewTracker(convergence.TrackerOptions{
			Store:    o.StoreTrace,
			Show:     o.ShowTrace,
			Extended: o.ExtendedTrace,
			Logger:   logger,
			Capacity: o.Iterations,
		}),
	}

	return s, nil
}

// initialize evaluates f and J at x0 and reports whether x0 already satisfies ftol.
func (s *state) initialize() (bool, error) {
	s.phase = phaseInitializing
	if err := s.evalFused(s.x, s.fx, s.jac); err != nil {
		return false, err
	}
	s.fConv = convergence.FConverged(s.fx, s.th)
	s.logger.Debug("initialized",
		zap.Int("n", s.n),
		zap.Float64("residual_norm", matrix.NormInf(s.fx)),
		zap.Bool("analytic_jacobian", s.f.AnalyticJacobian()),
	)
	if s.fConv {
		s.phase = phaseConverged
		return true, nil
	}
	s.phase = phaseIterating

	return false, nil
}

// countJacobian books one Jacobian evaluation and the residual calls
// forward differencing spends on it (n, the baseline is reused).
func (s *state) countJacobian() {
	s.jCalls++
	if !s.f.AnalyticJacobian() {
		s.fCalls += s.n
	}
}

func (s *state) evalFused(x, fx []float64, jac *matrix.Dense) error {
	s.fCalls++
	s.countJacobian()
	if err := s.f.ResidualJacobian(x, fx, jac); err != nil {
		return err
	}
	if !matrix.AllFinite(fx) {
		return function.NewEvaluationError(function.OpResidual, x, ErrNonFinite)
	}
	if !matrix.AllFinite(jac.RawData()) {
		return function.NewEvaluationError(function.OpJacobian, x, ErrNonFinite)
	}

	return nil
}

// evalResidual evaluates f(x) without a finiteness check; callers decide.
func (s *state) evalResidual(x, fx []float64) error {
	s.fCalls++

	return s.f.Residual(x, fx)
}

func (s *state) evalFiniteResidual(x, fx []float64) error {
	if err := s.evalResidual(x, fx); err != nil {
		return err
	}
	if !matrix.AllFinite(fx) {
		return function.NewEvaluationError(function.OpResidual, x, ErrNonFinite)
	}

	return nil
}

// evalJacobianAt refreshes J at the accepted point s.x using s.fx as the
// finite-difference baseline.
func (s *state) evalJacobianAt() error {
	s.countJacobian()
	if s.f.FusedJacobian() {
		s.fCalls++
	}
	if err := s.f.JacobianFrom(s.x, s.fx, s.jac); err != nil {
		return err
	}
	if !matrix.AllFinite(s.jac.RawData()) {
		return function.NewEvaluationError(function.OpJacobian, s.x, ErrNonFinite)
	}

	return nil
}

// assess applies the termination rule after an accepted step and returns true
// when the loop must stop.
func (s *state) assess() bool {
	s.xConv, s.fConv = convergence.Assess(s.x, s.xPrev, s.fx, s.th)
	if s.xConv || s.fConv {
		s.phase = phaseConverged
		return true
	}

	return s.limit()
}

// limit stops the loop at the iteration cap.
func (s *state) limit() bool {
	if s.th.LimitReached(s.iter) {
		s.phase = phaseMaxIterations
		return true
	}

	return false
}

// stepNorm returns ‖x − xPrev‖₂.
func (s *state) stepNorm() float64 {
	var acc float64
	for i := range s.x {
		d := s.x[i] - s.xPrev[i]
		acc += d * d
	}

	return math.Sqrt(acc)
}

func (s *state) results() Results {
	r := Results{
		Method:        s.method,
		Description:   s.method.Description(s.opts.Autoscale),
		InitialX:      s.x0,
		Zero:          append([]float64(nil), s.x...),
		Residual:      append([]float64(nil), s.fx...),
		ResidualNorm:  matrix.NormInf(s.fx),
		Iterations:    s.iter,
		XConverged:    s.xConv,
		XTol:          s.opts.XTol,
		FConverged:    s.fConv,
		FTol:          s.opts.FTol,
		Trace:         s.tracker.Trace(),
		ResidualCalls: s.fCalls,
		JacobianCalls: s.jCalls,
	}
	s.logger.Debug("finished",
		zap.Stringer("phase", s.phase),
		zap.Int("iterations", r.Iterations),
		zap.Float64("residual_norm", r.ResidualNorm),
		zap.Bool("converged", r.Converged()),
	)

	return r
}

// iterationError attaches the iteration number to a fatal error.
func (s *state) iterationError(err error) error {
	return fmt.Errorf("%s: iteration %d: %w", s.method, s.iter+1, err)
}
