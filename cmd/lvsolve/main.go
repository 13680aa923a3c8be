// SPDX-License-Identifier: MIT

// Command lvsolve runs the nonlinear solvers on the built-in problem
// catalogue.
//
//	lvsolve problems
//	lvsolve solve --problem nlsolve
//	lvsolve solve --problem rosenbrock --method newton --output yaml
//	lvsolve solve --problem helical-valley --store-trace --plot residuals.png
//
// Settings come from (lowest to highest precedence) built-in defaults, the
// YAML file given by --config, LVSOLVE_* environment variables and flags.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
