// SPDX-License-Identifier: MIT

package convergence

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one iteration snapshot. Entries are never mutated once appended.
type Entry struct {
	Iteration    int                `json:"iteration" yaml:"iteration"`
	ResidualNorm float64            `json:"residual_norm" yaml:"residual_norm"` // ‖f(x)‖∞
	StepNorm     float64            `json:"step_norm" yaml:"step_norm"`         // ‖Δx‖₂
	Extended     map[string]float64 `json:"extended,omitempty" yaml:"extended,omitempty"`
}

// String renders the entry as one fixed-width table row.
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%6d   %14e   %14e", e.Iteration, e.ResidualNorm, e.StepNorm)
	for _, k := range sortedKeys(e.Extended) {
		fmt.Fprintf(&b, "   %s=%g", k, e.Extended[k])
	}

	return b.String()
}

// Trace is the ordered iteration history of one solve.
type Trace []Entry

// Len returns the number of recorded iterations.
func (t Trace) Len() int { return len(t) }

// Last returns the final entry, if any.
func (t Trace) Last() (Entry, bool) {
	if len(t) == 0 {
		return Entry{}, false
	}

	return t[len(t)-1], true
}

// ResidualNorms extracts the residual column (used for plotting).
func (t Trace) ResidualNorms() []float64 {
	out := make([]float64, len(t))
	for i, e := range t {
		out[i] = e.ResidualNorm
	}

	return out
}

// String renders the trace as a table with a header row.
func (t Trace) String() string {
	var b strings.Builder
	b.WriteString("Iter     f(x) inf-norm    Step 2-norm \n")
	b.WriteString("------   --------------   --------------\n")
	for _, e := range t {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
