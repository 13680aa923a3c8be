// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvsolve/convergence"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// minPlotNorm replaces exact zeros on the logarithmic axis.
const minPlotNorm = 1e-300

var errEmptyTrace = errors.New("plot: empty trace")

// savePlot draws ‖f(x)‖∞ per iteration on a log axis. The format follows
// the file extension.
func savePlot(path, title string, tr convergence.Trace) error {
	if tr.Len() == 0 {
		return errEmptyTrace
	}
	norms := tr.ResidualNorms()
	pts := make(plotter.XYs, len(norms))
	lo, hi := math.Inf(1), 0.0
	for i, v := range norms {
		y := math.Max(v, minPlotNorm)
		pts[i].X = float64(tr[i].Iteration)
		pts[i].Y = y
		lo, hi = math.Min(lo, y), math.Max(hi, y)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "residual inf-norm"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	p.Add(line, points)

	// A flat series would collapse the axis onto a single decade.
	if lo == hi {
		lo, hi = lo/10, hi*10
	}
	p.Y.Min, p.Y.Max = lo, hi

	if err = p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	return nil
}
