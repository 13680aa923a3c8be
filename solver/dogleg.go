// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvsolve/matrix"
)

// stepKind names which branch of the dogleg produced a step.
type stepKind int

const (
	stepGaussNewton     stepKind = iota // full Gauss-Newton step, inside the region
	stepCauchyTruncated                 // steepest descent cut at the boundary
	stepDogleg                          // boundary point between Cauchy and Gauss-Newton
	stepCauchy                          // full Cauchy step (singular Gauss-Newton only)
	stepZero                            // zero gradient and no Gauss-Newton step
)

// doglegInfo describes one computed step.
type doglegInfo struct {
	kind       stepKind
	scaledNorm float64 // ‖d∘p‖₂
	singular   bool    // Gauss-Newton system was singular
}

// dogleg holds the scratch vectors of one trust-region solve.
type dogleg struct {
	gn   []float64 // Gauss-Newton step
	g    []float64 // Jᵀf
	v    []float64 // D⁻²·g, steepest-descent direction in x space
	jv   []float64 // J·v
	diff []float64 // gn − cauchy
}

func newDogleg(n int) *dogleg {
	return &dogleg{
		gn:   make([]float64, n),
		g:    make([]float64, n),
		v:    make([]float64, n),
		jv:   make([]float64, n),
		diff: make([]float64, n),
	}
}

// step writes into p the dogleg step for the model ½‖f + J·p‖² subject to
// ‖d∘p‖₂ ≤ delta. lu is overwritten with the factorisation of jac.
//
// Branches:
//  1. ‖d∘p_gn‖ ≤ Δ: p = p_gn.
//  2. ‖d∘p_c‖ ≥ Δ (or p_gn unavailable and p_c outside): p = −Δ/‖D⁻¹g‖ · D⁻²g.
//  3. otherwise p = p_c + β(p_gn − p_c) with ‖d∘p‖ = Δ, β ∈ [0, 1].
//
// A singular Gauss-Newton system uses p_c (truncated when outside).
func (w *dogleg) step(jac *matrix.Dense, lu *matrix.LUDecomp, fx, d []float64, delta float64, p []float64) (doglegInfo, error) {
	var info doglegInfo
	n := len(p)

	// Stage 1: Gauss-Newton step J·p_gn = −f.
	gnOK := true
	if err := lu.Decompose(jac); err != nil {
		if !errors.Is(err, matrix.ErrSingular) {
			return info, err
		}
		gnOK = false
	} else {
		if err = lu.SolveInto(fx, w.gn); err != nil {
			return info, err
		}
		for i := range w.gn {
			w.gn[i] = -w.gn[i]
		}
		gnOK = matrix.AllFinite(w.gn)
	}
	info.singular = !gnOK

	var gnNorm float64
	if gnOK {
		gnNorm, _ = matrix.ScaledNorm2(d, w.gn)
		if gnNorm <= delta {
			copy(p, w.gn)
			info.kind = stepGaussNewton
			info.scaledNorm = gnNorm

			return info, nil
		}
	}

	// Stage 2: Cauchy point in scaled coordinates.
	if err := matrix.MatTVecInto(jac, fx, w.g); err != nil {
		return info, err
	}
	var gsNorm2 float64
	for i := 0; i < n; i++ {
		gs := w.g[i] / d[i]
		gsNorm2 += gs * gs
		w.v[i] = gs / d[i]
	}
	if gsNorm2 == 0 {
		for i := range p {
			p[i] = 0
		}
		info.kind = stepZero

		return info, nil
	}
	gsNorm := math.Sqrt(gsNorm2)
	if err := matrix.MatVecInto(jac, w.v, w.jv); err != nil {
		return info, err
	}
	jvNorm2, _ := matrix.Dot(w.jv, w.jv)
	tau := math.Inf(1)
	if jvNorm2 > 0 {
		tau = gsNorm2 / jvNorm2
	}
	cauchyNorm := tau * gsNorm

	if cauchyNorm >= delta {
		scale := delta / gsNorm
		for i := range p {
			p[i] = -scale * w.v[i]
		}
		info.kind = stepCauchyTruncated
		info.scaledNorm = delta

		return info, nil
	}
	if !gnOK {
		for i := range p {
			p[i] = -tau * w.v[i]
		}
		info.kind = stepCauchy
		info.scaledNorm = cauchyNorm

		return info, nil
	}

	// Stage 3: intersect the segment p_c → p_gn with the boundary.
	var a, b float64
	for i := 0; i < n; i++ {
		pc := -tau * w.v[i]
		w.diff[i] = w.gn[i] - pc
		ds := d[i] * w.diff[i]
		a += ds * ds
		b += 2 * (d[i] * pc) * ds
	}
	c := cauchyNorm*cauchyNorm - delta*delta // < 0
	beta := boundaryRoot(a, b, c)
	for i := 0; i < n; i++ {
		p[i] = -tau*w.v[i] + beta*w.diff[i]
	}
	info.kind = stepDogleg
	info.scaledNorm, _ = matrix.ScaledNorm2(d, p)

	return info, nil
}

// boundaryRoot returns the non-negative root of a·β² + b·β + c = 0 for
// a > 0, c < 0, clamped to [0, 1]. The form is chosen by the sign of b to
// avoid cancellation.
func boundaryRoot(a, b, c float64) float64 {
	disc := math.Sqrt(math.Max(b*b-4*a*c, 0))
	var beta float64
	if b <= 0 {
		beta = (-b + disc) / (2 * a)
	} else {
		beta = -2 * c / (b + disc)
	}

	return math.Min(math.Max(beta, 0), 1)
}
