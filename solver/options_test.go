// SPDX-License-Identifier: MIT
package solver_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsolve/convergence"
	"github.com/katalvlaran/lvsolve/linesearch"
	"github.com/katalvlaran/lvsolve/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultOptions(t *testing.T) {
	o := solver.DefaultOptions()
	assert.Equal(t, 0.0, o.XTol)
	assert.Equal(t, 1e-8, o.FTol)
	assert.Equal(t, 1000, o.Iterations)
	assert.False(t, o.StoreTrace)
	assert.False(t, o.ShowTrace)
	assert.False(t, o.ExtendedTrace)
	assert.Equal(t, 1.0, o.Factor)
	assert.True(t, o.Autoscale)
	assert.Equal(t, 1e10, o.MaxRadius)
	assert.Zero(t, o.PivotTolerance)
	require.NotNil(t, o.Linesearch)
	assert.Equal(t, "backtracking", o.Linesearch.Name())
	assert.NotNil(t, o.Logger)
	require.NoError(t, o.Validate())
}

func TestOptionConstructorsApply(t *testing.T) {
	o := solver.DefaultOptions()
	logger := zap.NewExample()
	for _, opt := range []solver.Option{
		solver.WithXTol(1e-9),
		solver.WithFTol(1e-4),
		solver.WithIterations(7),
		solver.WithStoreTrace(true),
		solver.WithShowTrace(true),
		solver.WithExtendedTrace(true),
		solver.WithFactor(100),
		solver.WithAutoscale(false),
		solver.WithMaxRadius(3),
		solver.WithLinesearch(linesearch.Static{}),
		solver.WithPivotTolerance(1e-6),
		solver.WithLogger(logger),
	} {
		opt(&o)
	}
	assert.Equal(t, 1e-9, o.XTol)
	assert.Equal(t, 1e-4, o.FTol)
	assert.Equal(t, 7, o.Iterations)
	assert.True(t, o.StoreTrace)
	assert.True(t, o.ShowTrace)
	assert.True(t, o.ExtendedTrace)
	assert.Equal(t, 100.0, o.Factor)
	assert.False(t, o.Autoscale)
	assert.Equal(t, 3.0, o.MaxRadius)
	assert.Equal(t, linesearch.Static{}, o.Linesearch)
	assert.Equal(t, 1e-6, o.PivotTolerance)
	assert.Same(t, logger, o.Logger)
}

func TestOptionConstructorsPanic(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	cases := map[string]func(){
		"xtol negative":   func() { solver.WithXTol(-1) },
		"xtol nan":        func() { solver.WithXTol(nan) },
		"ftol inf":        func() { solver.WithFTol(inf) },
		"ftol negative":   func() { solver.WithFTol(-1e-9) },
		"iterations zero": func() { solver.WithIterations(0) },
		"factor zero":     func() { solver.WithFactor(0) },
		"factor inf":      func() { solver.WithFactor(inf) },
		"radius negative": func() { solver.WithMaxRadius(-1) },
		"radius nan":      func() { solver.WithMaxRadius(nan) },
		"nil linesearch":  func() { solver.WithLinesearch(nil) },
		"pivot negative":  func() { solver.WithPivotTolerance(-1e-3) },
		"pivot inf":       func() { solver.WithPivotTolerance(inf) },
	}
	for name, fn := range cases {
		assert.Panics(t, fn, name)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(o *solver.Options)
		stopping bool // rejected by convergence.Thresholds
	}{
		{"xtol", func(o *solver.Options) { o.XTol = -1 }, true},
		{"xtol inf", func(o *solver.Options) { o.XTol = math.Inf(1) }, true},
		{"ftol", func(o *solver.Options) { o.FTol = math.NaN() }, true},
		{"iterations", func(o *solver.Options) { o.Iterations = -3 }, true},
		{"factor", func(o *solver.Options) { o.Factor = 0 }, false},
		{"max radius", func(o *solver.Options) { o.MaxRadius = 0 }, false},
		{"pivot tolerance", func(o *solver.Options) { o.PivotTolerance = math.NaN() }, false},
	}
	for _, tc := range cases {
		o := solver.DefaultOptions()
		tc.mutate(&o)
		err := o.Validate()
		assert.ErrorIs(t, err, solver.ErrBadOptions, tc.name)
		if tc.stopping {
			assert.ErrorIs(t, err, convergence.ErrBadThresholds, tc.name)
		} else {
			assert.NotErrorIs(t, err, convergence.ErrBadThresholds, tc.name)
		}
	}

	// Nil logger and searcher fall back to defaults.
	o := solver.DefaultOptions()
	o.Logger, o.Linesearch = nil, nil
	require.NoError(t, o.Validate())
}

func TestNilOptionIgnored(t *testing.T) {
	_, f := mustProblem(t, "affine", true)
	res, err := solver.Solve(f, []float64{0, 0, 0}, solver.Newton, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged())
}

// TestOptionsDoNotLeak: a tight run does not change the defaults of the next.
func TestOptionsDoNotLeak(t *testing.T) {
	p, f := mustProblem(t, "rosenbrock", true)
	capped, err := solver.Solve(f, p.StartPoint(), solver.TrustRegion, solver.WithIterations(1), solver.WithFTol(0))
	require.NoError(t, err)
	assert.Equal(t, 1, capped.Iterations)

	res, err := solver.Solve(f, p.StartPoint(), solver.TrustRegion)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.Equal(t, 1e-8, res.FTol)
}

func TestAutoscaleDescription(t *testing.T) {
	p, f := mustProblem(t, "rosenbrock", true)
	res, err := solver.Solve(f, p.StartPoint(), solver.TrustRegion, solver.WithAutoscale(false))
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.Equal(t, "Trust-region with dogleg", res.Description)
}
