// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lvsolve/problems"
	"github.com/katalvlaran/lvsolve/solver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// report is the YAML document written by `solve --output yaml`.
type report struct {
	Problem   string         `yaml:"problem"`
	Analytic  bool           `yaml:"analytic_jacobian"`
	Converged bool           `yaml:"converged"`
	Results   solver.Results `yaml:"results"`
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		problem string
		x0      []float64
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a catalogue problem",
		Long: `Solve runs the selected method on a catalogue problem from its standard
starting point (or --x0) and prints the result summary or a YAML report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runSolve(cmd.OutOrStdout(), a.logger, cfg, problem, x0)
		},
	}

	d := solver.DefaultOptions()
	fs := cmd.Flags()
	fs.StringVar(&problem, "problem", "", "Catalogue problem name (see `lvsolve problems`)")
	fs.Float64SliceVar(&x0, "x0", nil, "Starting point, comma separated (default: the problem's start)")
	fs.String("method", solver.TrustRegion.String(), "Method: trust_region or newton")
	fs.String("linesearch", d.Linesearch.Name(), "Newton line search: backtracking or static")
	fs.Float64("xtol", d.XTol, "Step-size tolerance (0 disables)")
	fs.Float64("ftol", d.FTol, "Residual inf-norm tolerance")
	fs.Int("iterations", d.Iterations, "Iteration cap")
	fs.Float64("factor", d.Factor, "Initial trust-region radius factor")
	fs.Bool("autoscale", d.Autoscale, "Scale the trust region by Jacobian column norms")
	fs.Float64("max-radius", d.MaxRadius, "Trust-region radius cap")
	fs.Float64("pivot-tol", d.PivotTolerance, "Relative LU pivot threshold for a singular Jacobian (0: machine epsilon)")
	fs.Bool("analytic", true, "Use the analytic Jacobian (false: forward differences)")
	fs.Bool("store-trace", false, "Keep the iteration trace")
	fs.Bool("show-trace", false, "Log every iteration at info level (with --log-level info)")
	fs.Bool("extended-trace", false, "Include solver internals in the trace")
	fs.String("output", outputText, "Output format: text or yaml")
	fs.String("plot", "", "Write a residual-norm chart to this file (.png, .svg, .pdf)")
	_ = cmd.MarkFlagRequired("problem")

	return cmd
}

func runSolve(w io.Writer, logger *zap.Logger, cfg Config, name string, x0 []float64) error {
	p, err := problems.Lookup(name)
	if err != nil {
		return err
	}
	method, opts, err := cfg.solverOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger.With(zap.String("problem", p.Name))

	f, err := p.Differentiable(cfg.Analytic)
	if err != nil {
		return err
	}
	if len(x0) == 0 {
		x0 = p.StartPoint()
	}

	logger.Debug("solving",
		zap.String("problem", p.Name),
		zap.Stringer("method", method),
		zap.Bool("analytic", cfg.Analytic),
		zap.Float64s("x0", x0),
	)
	res, err := solver.SolveWithOptions(f, x0, method, opts)
	if err != nil {
		return fmt.Errorf("solve %s: %w", p.Name, err)
	}

	switch {
	case cfg.Plot == "":
	case res.Trace.Len() == 0:
		// Converged at x0: there is nothing to draw, the result still stands.
		logger.Warn("plot skipped: empty trace",
			zap.String("path", cfg.Plot),
			zap.Int("iterations", res.Iterations),
		)
	default:
		title := fmt.Sprintf("%s (%s)", p.Name, method)
		if err = savePlot(cfg.Plot, title, res.Trace); err != nil {
			return err
		}
		logger.Info("plot written", zap.String("path", cfg.Plot))
	}

	switch strings.ToLower(cfg.Output) {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(report{
			Problem:   p.Name,
			Analytic:  cfg.Analytic,
			Converged: res.Converged(),
			Results:   res,
		}); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	case outputText, "":
		fmt.Fprintln(w, res)
		if cfg.Trace.Store && res.Trace.Len() > 0 {
			fmt.Fprintln(w)
			fmt.Fprint(w, res.Trace.String())
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output)
	}
}
