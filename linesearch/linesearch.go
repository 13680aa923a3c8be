// SPDX-License-Identifier: MIT

package linesearch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotDescent is returned when φ'(0) >= 0.
	ErrNotDescent = errors.New("linesearch: direction is not a descent direction")

	// ErrMaxSteps is returned when no acceptable step was found within the step budget.
	ErrMaxSteps = errors.New("linesearch: too many backtracking steps")

	// ErrBadProblem is returned for a nil merit function or a non-positive initial step.
	ErrBadProblem = errors.New("linesearch: invalid problem")

	// ErrUnknown is returned by Parse for an unrecognised name.
	ErrUnknown = errors.New("linesearch: unknown strategy")
)

// Merit evaluates φ(α). Errors abort the search and are returned unchanged.
type Merit func(alpha float64) (float64, error)

// Problem is one line-search request.
type Problem struct {
	Merit   Merit
	Value0  float64 // φ(0)
	Slope0  float64 // φ'(0), must be negative for Backtracking
	Initial float64 // first trial step; 0 means 1
}

func (p Problem) initial() float64 {
	if p.Initial == 0 {
		return 1
	}

	return p.Initial
}

// Searcher selects a step length.
type Searcher interface {
	Search(p Problem) (float64, error)
	Name() string
}

// Parse returns the default-configured Searcher with the given name
// ("backtracking" or "static", case-insensitive).
func Parse(name string) (Searcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", nameBacktracking:
		return NewBacktracking(), nil
	case nameStatic:
		return Static{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
}

const (
	nameBacktracking = "backtracking"
	nameStatic       = "static"
)

// Static returns Problem.Initial (1 by default) and never evaluates φ.
type Static struct{}

// Search implements Searcher.
func (Static) Search(p Problem) (float64, error) {
	if p.initial() <= 0 {
		return 0, fmt.Errorf("%w: initial step %g", ErrBadProblem, p.Initial)
	}

	return p.initial(), nil
}

// Name implements Searcher.
func (Static) Name() string { return nameStatic }
