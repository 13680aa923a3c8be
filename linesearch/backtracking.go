// SPDX-License-Identifier: MIT

package linesearch

import (
	"fmt"
	"math"
)

// Defaults for Backtracking.
const (
	DefaultC1       = 1e-4
	DefaultRhoHi    = 0.5
	DefaultRhoLo    = 0.1
	DefaultMaxSteps = 1000
	DefaultOrder    = 3
)

// maxFiniteHalvings bounds the halvings used to step back from a non-finite
// merit value (−log₂ ε).
const maxFiniteHalvings = 52

// Backtracking is an Armijo backtracking line search with polynomial
// interpolation. Each new trial is clamped to [RhoLo·α, RhoHi·α].
type Backtracking struct {
	C1       float64 // sufficient-decrease constant, (0, 1)
	RhoHi    float64 // upper shrink bound, (0, 1)
	RhoLo    float64 // lower shrink bound, (0, RhoHi]
	MaxSteps int     // backtracking budget
	Order    int     // 2 = quadratic only, 3 = quadratic then cubic
}

// Option configures a Backtracking. Constructors panic on nonsensical values.
type Option func(*Backtracking)

// WithC1 sets the Armijo constant.
func WithC1(c1 float64) Option {
	if !(c1 > 0 && c1 < 1) {
		panic("linesearch: WithC1: c1 must be in (0,1)")
	}

	return func(b *Backtracking) { b.C1 = c1 }
}

// WithRho sets the interpolation safeguards.
func WithRho(lo, hi float64) Option {
	if !(lo > 0 && lo <= hi && hi < 1) {
		panic("linesearch: WithRho: need 0 < lo <= hi < 1")
	}

	return func(b *Backtracking) { b.RhoLo, b.RhoHi = lo, hi }
}

// WithMaxSteps sets the backtracking budget.
func WithMaxSteps(n int) Option {
	if n < 1 {
		panic("linesearch: WithMaxSteps: n must be >= 1")
	}

	return func(b *Backtracking) { b.MaxSteps = n }
}

// WithOrder selects quadratic (2) or cubic (3) interpolation.
func WithOrder(order int) Option {
	if order != 2 && order != 3 {
		panic("linesearch: WithOrder: order must be 2 or 3")
	}

	return func(b *Backtracking) { b.Order = order }
}

// NewBacktracking returns a Backtracking with defaults overridden by opts.
func NewBacktracking(opts ...Option) *Backtracking {
	b := &Backtracking{
		C1:       DefaultC1,
		RhoHi:    DefaultRhoHi,
		RhoLo:    DefaultRhoLo,
		MaxSteps: DefaultMaxSteps,
		Order:    DefaultOrder,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name implements Searcher.
func (b *Backtracking) Name() string { return nameBacktracking }

// Search implements Searcher.
//
// Stage 1: step back by halving while φ is not finite.
// Stage 2: while the Armijo condition fails, replace α by the minimiser of
// the quadratic through φ(0), φ'(0), φ(α) (first step, or Order 2) or of the
// cubic through φ(0), φ'(0) and the last two trials, clamped to the safeguards.
func (b *Backtracking) Search(p Problem) (float64, error) {
	if p.Merit == nil || p.initial() <= 0 {
		return 0, ErrBadProblem
	}
	if !(p.Slope0 < 0) {
		return 0, fmt.Errorf("%w: slope %g", ErrNotDescent, p.Slope0)
	}
	phi0, dphi0 := p.Value0, p.Slope0

	alpha1, alpha2 := p.initial(), p.initial()
	phiPrev := phi0
	phi, err := p.Merit(alpha2)
	if err != nil {
		return 0, err
	}

	for k := 0; !isFinite(phi) && k < maxFiniteHalvings; k++ {
		alpha1 = alpha2
		alpha2 = alpha1 / 2
		if phi, err = p.Merit(alpha2); err != nil {
			return 0, err
		}
	}

	var tmp float64
	for steps := 1; phi > phi0+b.C1*alpha2*dphi0 || !isFinite(phi); steps++ {
		if steps > b.MaxSteps {
			return 0, fmt.Errorf("%w: %d steps, alpha=%g", ErrMaxSteps, b.MaxSteps, alpha2)
		}
		if b.Order == 2 || steps == 1 || !isFinite(phi) {
			tmp = quadraticMin(phi0, dphi0, alpha2, phi)
		} else {
			tmp = cubicMin(phi0, dphi0, alpha1, phiPrev, alpha2, phi)
		}
		if math.IsNaN(tmp) {
			tmp = alpha2 * b.RhoHi
		}
		alpha1 = alpha2
		tmp = math.Min(tmp, alpha2*b.RhoHi)
		alpha2 = math.Max(tmp, alpha2*b.RhoLo)

		phiPrev = phi
		if phi, err = p.Merit(alpha2); err != nil {
			return 0, err
		}
	}

	return alpha2, nil
}

// quadraticMin minimises q(α) = φ0 + φ'0·α + cα² fitted through (a, φa).
func quadraticMin(phi0, dphi0, a, phia float64) float64 {
	return -(dphi0 * a * a) / (2 * (phia - phi0 - dphi0*a))
}

// cubicMin minimises the cubic through φ0, φ'0, (a1, φ1) and (a2, φ2).
func cubicMin(phi0, dphi0, a1, phi1, a2, phi2 float64) float64 {
	div := 1 / (a1 * a1 * a2 * a2 * (a2 - a1))
	r2 := phi2 - phi0 - dphi0*a2
	r1 := phi1 - phi0 - dphi0*a1
	a := (a1*a1*r2 - a2*a2*r1) * div
	b := (-a1*a1*a1*r2 + a2*a2*a2*r1) * div
	if math.Abs(a) <= 1e-12*math.Max(math.Abs(b), 1) {
		return -dphi0 / (2 * b)
	}
	d := math.Max(b*b-3*a*dphi0, 0)

	return (-b + math.Sqrt(d)) / (3 * a)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
