// SPDX-License-Identifier: MIT

package retrieval

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
)

// maxHalvings bounds the Gauss–Newton step damping.
const maxHalvings = 30

// gaussNewton minimizes f(x) = ½‖|A·x| − b0‖² with damped Gauss–Newton steps.
//
// With s = sign(A·x) and r = |A·x| − b0, the amplitude residual is linearized
// as J·d = Re(conj(s) ∘ A·d). J is ℝ-linear; its adjoint with respect to
// Re⟨·,·⟩ is Jᵀ·r = Aᴴ·(s ∘ r). The step d solves min ‖J·d + r‖ by LSQR and
// is halved until f does not increase.
//
// Residual: ‖t·d‖ / ‖x⁺‖ for the accepted step length t.
type gaussNewton struct {
	a    operator.Operator
	b0   []float64
	opts Options
}

func newGaussNewton(p Problem) (Solver, error) {
	return &gaussNewton{a: p.A, b0: p.B0, opts: p.Opts}, nil
}

// Step performs one damped Gauss–Newton update.
func (g *gaussNewton) Step(x []complex128) ([]complex128, float64, error) {
	ax, err := g.a.Multiply(x)
	if err != nil {
		return nil, 0, err
	}

	var (
		m, n = g.a.Shape()
		s    = phasepack.SignTo(nil, ax)
		rhs  = make([]complex128, m)
		f0   = amplitudeMisfit(ax, g.b0)
	)
	for i := range ax {
		rhs[i] = complex(g.b0[i]-cmplx.Abs(ax[i]), 0)
	}

	var jac = &amplitudeJacobian{a: g.a, s: s, m: m, n: n, realOnly: !g.opts.IsComplex || g.opts.IsNonNegativeOnly}
	res, err := operator.LeastSquares(jac, rhs, g.opts.Tol, g.opts.MaxInnerIters, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("gauss-newton step: %w", err)
	}

	var (
		d    = res.X
		next = make([]complex128, n)
		t    = 1.0
	)
	project(d, Options{IsComplex: !jac.realOnly})
	for h := 0; h <= maxHalvings; h++ {
		cmplxs.AddScaledTo(next, x, complex(t, 0), d)
		project(next, g.opts)
		if ax, err = g.a.Multiply(next); err != nil {
			return nil, 0, err
		}
		if amplitudeMisfit(ax, g.b0) <= f0 {
			break
		}
		t /= 2
	}

	return next, relativeChange(next, x), nil
}

// amplitudeMisfit returns ½‖|ax| − b0‖².
func amplitudeMisfit(ax []complex128, b0 []float64) float64 {
	var sum, d float64
	for i := range ax {
		d = cmplx.Abs(ax[i]) - b0[i]
		sum += d * d
	}

	return sum / 2
}

// amplitudeJacobian is the ℝ-linear map d ↦ Re(conj(s) ∘ A·d). It satisfies
// operator.Operator with respect to the real inner product Re⟨·,·⟩, which is
// all LSQR requires. With realOnly set, the domain is restricted to ℝⁿ.
type amplitudeJacobian struct {
	a        operator.Operator
	s        []complex128
	m, n     int
	realOnly bool
}

func (j *amplitudeJacobian) Shape() (int, int) { return j.m, j.n }

func (j *amplitudeJacobian) Multiply(d []complex128) ([]complex128, error) {
	var in = d
	if j.realOnly {
		in = make([]complex128, len(d))
		for i, v := range d {
			in[i] = complex(real(v), 0)
		}
	}
	ad, err := j.a.Multiply(in)
	if err != nil {
		return nil, err
	}
	for i := range ad {
		ad[i] = complex(real(cmplx.Conj(j.s[i])*ad[i]), 0)
	}

	return ad, nil
}

func (j *amplitudeJacobian) AdjointMultiply(r []complex128) ([]complex128, error) {
	if len(r) != j.m {
		return nil, &phasepack.DimensionError{Op: "retrieval.amplitudeJacobian", Want: j.m, Got: len(r)}
	}
	var sr = make([]complex128, j.m)
	for i := range r {
		sr[i] = j.s[i] * complex(real(r[i]), 0)
	}
	out, err := j.a.AdjointMultiply(sr)
	if err != nil {
		return nil, err
	}
	if j.realOnly {
		for i, v := range out {
			out[i] = complex(real(v), 0)
		}
	}

	return out, nil
}

