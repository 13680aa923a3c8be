// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/lvsolve/linesearch"
	"github.com/katalvlaran/lvsolve/solver"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	envPrefix         = "LVSOLVE_"
	maxConfigFileSize = 1 << 20
)

// defaultConfig mirrors solver.DefaultOptions.
const defaultConfig = `
method: trust_region
linesearch: backtracking
xtol: 0
ftol: 1.0e-8
iterations: 1000
factor: 1.0
autoscale: true
max_radius: 1.0e+10
pivot_tol: 0
analytic: true
output: text
plot: ""
trace:
  store: false
  show: false
  extended: false
`

// Config is the merged CLI configuration.
type Config struct {
	Method     string      `koanf:"method"`
	Linesearch string      `koanf:"linesearch"`
	XTol       float64     `koanf:"xtol"`
	FTol       float64     `koanf:"ftol"`
	Iterations int         `koanf:"iterations"`
	Factor     float64     `koanf:"factor"`
	Autoscale  bool        `koanf:"autoscale"`
	MaxRadius  float64     `koanf:"max_radius"`
	PivotTol   float64     `koanf:"pivot_tol"`
	Analytic   bool        `koanf:"analytic"`
	Output     string      `koanf:"output"`
	Plot       string      `koanf:"plot"`
	Trace      TraceConfig `koanf:"trace"`
}

// TraceConfig groups the trace switches.
type TraceConfig struct {
	Store    bool `koanf:"store"`
	Show     bool `koanf:"show"`
	Extended bool `koanf:"extended"`
}

// flagKeys maps solve flags onto configuration keys.
var flagKeys = map[string]string{
	"method":         "method",
	"linesearch":     "linesearch",
	"xtol":           "xtol",
	"ftol":           "ftol",
	"iterations":     "iterations",
	"factor":         "factor",
	"autoscale":      "autoscale",
	"max-radius":     "max_radius",
	"pivot-tol":      "pivot_tol",
	"analytic":       "analytic",
	"output":         "output",
	"plot":           "plot",
	"store-trace":    "trace.store",
	"show-trace":     "trace.show",
	"extended-trace": "trace.extended",
}

// loadConfig merges defaults, the optional YAML file, LVSOLVE_* variables and
// the flags the user actually set.
func loadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(defaultConfig)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to stat config file: %w", err)
		}
		if info.Size() > maxConfigFileSize {
			return Config{}, fmt.Errorf("config file %s is larger than %d bytes", path, maxConfigFileSize)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// LVSOLVE_MAX_RADIUS -> max_radius, LVSOLVE_TRACE_STORE -> trace.store
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if flags != nil {
		var setErr error
		flags.Visit(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok || setErr != nil {
				return
			}
			setErr = k.Set(key, f.Value.String())
		})
		if setErr != nil {
			return Config{}, fmt.Errorf("failed to apply flags: %w", setErr)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "trace_"); ok {
		return "trace." + rest
	}

	return key
}

// solverOptions turns the configuration into a validated options record.
func (c Config) solverOptions() (solver.Method, solver.Options, error) {
	method, err := solver.ParseMethod(c.Method)
	if err != nil {
		return 0, solver.Options{}, err
	}
	searcher, err := linesearch.Parse(c.Linesearch)
	if err != nil {
		return 0, solver.Options{}, err
	}

	o := solver.DefaultOptions()
	o.XTol = c.XTol
	o.FTol = c.FTol
	o.Iterations = c.Iterations
	o.Factor = c.Factor
	o.Autoscale = c.Autoscale
	o.MaxRadius = c.MaxRadius
	o.PivotTolerance = c.PivotTol
	o.Linesearch = searcher
	o.StoreTrace = c.Trace.Store || c.Plot != ""
	o.ShowTrace = c.Trace.Show
	o.ExtendedTrace = c.Trace.Extended
	if err := o.Validate(); err != nil {
		return 0, solver.Options{}, err
	}

	return method, o, nil
}
