// SPDX-License-Identifier: MIT

package problems

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvsolve/function"
	"github.com/katalvlaran/lvsolve/matrix"
)

// ErrUnknownProblem is returned by Lookup for a name outside the catalogue.
var ErrUnknownProblem = errors.New("problems: unknown problem")

// Problem is one catalogue entry.
type Problem struct {
	Name        string
	Description string
	Dim         int
	Start       []float64 // standard starting point
	Root        []float64 // nil when no closed form is known

	Residual function.ResidualFunc
	Jacobian function.JacobianFunc
}

// StartPoint returns a fresh copy of Start.
func (p Problem) StartPoint() []float64 {
	return append([]float64(nil), p.Start...)
}

// Differentiable wraps the problem for the solver. With analytic false the
// Jacobian is left to forward differences.
func (p Problem) Differentiable(analytic bool) (*function.Differentiable, error) {
	if analytic {
		return function.NewInPlace(p.Dim, p.Residual, p.Jacobian, nil)
	}

	return function.NewInPlace(p.Dim, p.Residual, nil, nil)
}

// All returns the catalogue ordered by name.
func All() []Problem {
	out := make([]Problem, 0, len(catalogue))
	for _, p := range catalogue {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Names returns the catalogue names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Lookup finds a problem by name (case-insensitive).
func Lookup(name string) (Problem, error) {
	p, ok := catalogue[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Problem{}, fmt.Errorf("%w: %q", ErrUnknownProblem, name)
	}

	return p, nil
}

// fill writes row-major values into jac.
func fill(jac *matrix.Dense, vals ...float64) {
	copy(jac.RawData(), vals)
}
