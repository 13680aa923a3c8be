// SPDX-License-Identifier: MIT

package convergence

import (
	"go.uber.org/zap"
)

// TrackerOptions selects what a Tracker does with each snapshot.
type TrackerOptions struct {
	Store    bool        // keep entries for the result
	Show     bool        // log each entry at Info level
	Extended bool        // keep solver-internal scalars
	Logger   *zap.Logger // nil means zap.NewNop()
	Capacity int         // preallocation hint, usually the iteration cap
}

// Tracker records iteration snapshots for one solve. Not safe for concurrent use.
type Tracker struct {
	opts   TrackerOptions
	logger *zap.Logger
	trace  Trace
}

// NewTracker builds a Tracker.
func NewTracker(opts TrackerOptions) *Tracker {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{opts: opts, logger: logger}
	if opts.Store && opts.Capacity > 0 {
		// Bound the preallocation; very large caps grow on demand.
		c := opts.Capacity
		if c > 1024 {
			c = 1024
		}
		t.trace = make(Trace, 0, c)
	}

	return t
}

// Enabled reports whether Record has any effect. Solvers skip building
// extras maps when it returns false.
func (t *Tracker) Enabled() bool {
	return t.opts.Store || t.opts.Show
}

// Extended reports whether extras are kept.
func (t *Tracker) Extended() bool {
	return t.opts.Extended
}

// Record appends and/or logs one snapshot. extras is copied; it is dropped
// unless the tracker is extended.
func (t *Tracker) Record(iter int, residualNorm, stepNorm float64, extras map[string]float64) {
	if !t.Enabled() {
		return
	}
	e := Entry{Iteration: iter, ResidualNorm: residualNorm, StepNorm: stepNorm}
	if t.opts.Extended && len(extras) > 0 {
		e.Extended = make(map[string]float64, len(extras))
		for k, v := range extras {
			e.Extended[k] = v
		}
	}
	if t.opts.Store {
		t.trace = append(t.trace, e)
	}
	if t.opts.Show {
		fields := []zap.Field{
			zap.Int("iteration", iter),
			zap.Float64("residual_norm", residualNorm),
			zap.Float64("step_norm", stepNorm),
		}
		for _, k := range sortedKeys(e.Extended) {
			fields = append(fields, zap.Float64(k, e.Extended[k]))
		}
		t.logger.Info("iteration", fields...)
	}
}

// Trace returns a copy of the stored entries (nil when nothing was stored).
func (t *Tracker) Trace() Trace {
	if len(t.trace) == 0 {
		return nil
	}
	out := make(Trace, len(t.trace))
	copy(out, t.trace)

	return out
}
