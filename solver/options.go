// SPDX-License-Identifier: MIT

// Package solver: per-call configuration.
// This file defines:
//   - documented defaults (constants),
//   - Options, the explicit configuration record,
//   - Option / WithX constructors (panic on nonsensical values),
//   - Options.Validate for records built by hand.
//
// Design goals:
//   - No process-wide defaults: every solve receives its own record.
//   - No dead switches: each field impacts behavior and is covered by tests.
//   - Method-specific fields are ignored by the other method.
package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvsolve/convergence"
	"github.com/katalvlaran/lvsolve/linesearch"
	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	DefaultXTol       = 0.0 // step test disabled
	DefaultFTol       = 1e-8
	DefaultIterations = 1000
	DefaultFactor     = 1.0
	DefaultAutoscale  = true
	DefaultMaxRadius  = 1e10

	DefaultPivotTolerance = 0.0 // machine epsilon
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicXTolInvalid       = "solver: WithXTol: xtol must be finite, non-negative"
	panicFTolInvalid       = "solver: WithFTol: ftol must be finite, non-negative"
	panicIterationsInvalid = "solver: WithIterations: iterations must be >= 1"
	panicFactorInvalid     = "solver: WithFactor: factor must be finite, > 0"
	panicMaxRadiusInvalid  = "solver: WithMaxRadius: radius cap must be > 0"
	panicLinesearchNil     = "solver: WithLinesearch: searcher must not be nil"
	panicPivotTolInvalid   = "solver: WithPivotTolerance: tol must be finite, non-negative"
)

// Options configures one solve.
type Options struct {
	XTol       float64 // ‖x − x_prev‖₂ threshold; 0 disables
	FTol       float64 // ‖f(x)‖∞ threshold
	Iterations int     // iteration cap

	StoreTrace    bool // keep the per-iteration trace in Results
	ShowTrace     bool // log each iteration through Logger
	ExtendedTrace bool // include solver-internal scalars in trace entries

	// Trust region only.
	Factor    float64 // initial radius scale
	Autoscale bool    // Jacobian column-norm scaling
	MaxRadius float64 // growth cap for the radius

	// Newton only.
	Linesearch linesearch.Searcher

	// Relative LU pivot threshold below which J counts as singular; 0 means machine epsilon.
	PivotTolerance float64

	Logger *zap.Logger // nil means zap.NewNop()
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults with a fresh backtracking searcher.
func DefaultOptions() Options {
	return Options{
		XTol:           DefaultXTol,
		FTol:           DefaultFTol,
		Iterations:     DefaultIterations,
		Factor:         DefaultFactor,
		Autoscale:      DefaultAutoscale,
		MaxRadius:      DefaultMaxRadius,
		PivotTolerance: DefaultPivotTolerance,
		Linesearch:     linesearch.NewBacktracking(),
		Logger:         zap.NewNop(),
	}
}

// WithXTol enables the step-size test at the given threshold (0 disables).
func WithXTol(xtol float64) Option {
	if !finiteNonNegative(xtol) {
		panic(panicXTolInvalid)
	}

	return func(o *Options) { o.XTol = xtol }
}

// WithFTol sets the residual ∞-norm threshold.
func WithFTol(ftol float64) Option {
	if !finiteNonNegative(ftol) {
		panic(panicFTolInvalid)
	}

	return func(o *Options) { o.FTol = ftol }
}

// WithIterations sets the iteration cap.
func WithIterations(n int) Option {
	if n < 1 {
		panic(panicIterationsInvalid)
	}

	return func(o *Options) { o.Iterations = n }
}

// WithStoreTrace keeps the trace in Results.
func WithStoreTrace(on bool) Option { return func(o *Options) { o.StoreTrace = on } }

// WithShowTrace logs every iteration at Info level.
func WithShowTrace(on bool) Option { return func(o *Options) { o.ShowTrace = on } }

// WithExtendedTrace adds solver internals (radius, ratio, step length…) to entries.
func WithExtendedTrace(on bool) Option { return func(o *Options) { o.ExtendedTrace = on } }

// WithFactor sets the initial trust-region radius scale.
func WithFactor(f float64) Option {
	if !(f > 0) || math.IsInf(f, 0) {
		panic(panicFactorInvalid)
	}

	return func(o *Options) { o.Factor = f }
}

// WithAutoscale toggles Jacobian column-norm scaling.
func WithAutoscale(on bool) Option { return func(o *Options) { o.Autoscale = on } }

// WithMaxRadius caps trust-region growth.
func WithMaxRadius(r float64) Option {
	if !(r > 0) {
		panic(panicMaxRadiusInvalid)
	}

	return func(o *Options) { o.MaxRadius = r }
}

// WithLinesearch sets the Newton step-length selector.
func WithLinesearch(s linesearch.Searcher) Option {
	if s == nil {
		panic(panicLinesearchNil)
	}

	return func(o *Options) { o.Linesearch = s }
}

// WithPivotTolerance sets the relative pivot threshold of the linear solves.
// Newton fails with ErrSingularJacobian below it; the trust region falls back to the Cauchy point.
func WithPivotTolerance(tol float64) Option {
	if !finiteNonNegative(tol) {
		panic(panicPivotTolInvalid)
	}

	return func(o *Options) { o.PivotTolerance = tol }
}

// WithLogger routes debug and trace output to l.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// Validate checks a hand-built record. Solve and SolveWithOptions call it.
// Stopping parameters are checked by convergence.Thresholds.Validate.
func (o Options) Validate() error {
	if err := o.thresholds().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOptions, err)
	}
	if !(o.Factor > 0) || math.IsInf(o.Factor, 0) {
		return fmt.Errorf("%w: factor=%g", ErrBadOptions, o.Factor)
	}
	if !(o.MaxRadius > 0) {
		return fmt.Errorf("%w: max radius=%g", ErrBadOptions, o.MaxRadius)
	}
	if !finiteNonNegative(o.PivotTolerance) {
		return fmt.Errorf("%w: pivot tolerance=%g", ErrBadOptions, o.PivotTolerance)
	}

	return nil
}

func (o Options) thresholds() convergence.Thresholds {
	return convergence.Thresholds{XTol: o.XTol, FTol: o.FTol, Iterations: o.Iterations}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

func (o Options) searcher() linesearch.Searcher {
	if o.Linesearch == nil {
		return linesearch.NewBacktracking()
	}

	return o.Linesearch
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
