// SPDX-License-Identifier: MIT

package retrieval

import (
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
)

// Backtracking line-search constants.
const (
	armijoC  = 1e-4
	minStep  = 1e-30
	stepGrow = 2.0
)

type flowKind int

const (
	flowWirtinger flowKind = iota
	flowAmplitude
)

// gradientFlow is gradient descent on one of two smooth losses, with Armijo
// backtracking and a step that doubles after every accepted move.
//
//	Wirtinger flow: f(x) = 1/(2m)·Σ(|a_i·x|² − b_i²)²,  g = 1/m·Aᴴ((|Ax|² − b²) ∘ Ax)
//	amplitude flow: f(x) = 1/(2m)·Σ(|a_i·x| − b_i)²,    g = 1/m·Aᴴ(Ax − b ∘ sign(Ax))
//
// Residual: ‖g‖ / ‖x‖.
type gradientFlow struct {
	a    operator.Operator
	b0   []float64
	opts Options
	kind flowKind
	tau  float64 // current step length; 0 until the first step
}

func newWirtingerFlow(p Problem) (Solver, error) {
	return &gradientFlow{a: p.A, b0: p.B0, opts: p.Opts, kind: flowWirtinger}, nil
}

func newAmplitudeFlow(p Problem) (Solver, error) {
	return &gradientFlow{a: p.A, b0: p.B0, opts: p.Opts, kind: flowAmplitude}, nil
}

func (f *gradientFlow) objective(ax []complex128) float64 {
	var sum, d float64
	for i, v := range ax {
		if f.kind == flowWirtinger {
			var mag = cmplx.Abs(v)
			d = mag*mag - f.b0[i]*f.b0[i]
		} else {
			d = cmplx.Abs(v) - f.b0[i]
		}
		sum += d * d
	}

	return sum / float64(2*len(ax))
}

func (f *gradientFlow) gradient(ax []complex128) ([]complex128, error) {
	var v = make([]complex128, len(ax))
	for i, z := range ax {
		if f.kind == flowWirtinger {
			var mag = cmplx.Abs(z)
			v[i] = complex(mag*mag-f.b0[i]*f.b0[i], 0) * z
		} else {
			v[i] = z - complex(f.b0[i], 0)*phasepack.Sign(z)
		}
	}
	g, err := f.a.AdjointMultiply(v)
	if err != nil {
		return nil, err
	}
	cmplxs.ScaleReal(1/float64(len(ax)), g)
	project(g, Options{IsComplex: f.opts.IsComplex && !f.opts.IsNonNegativeOnly})

	return g, nil
}

// Step takes one backtracking gradient step.
func (f *gradientFlow) Step(x []complex128) ([]complex128, float64, error) {
	ax, err := f.a.Multiply(x)
	if err != nil {
		return nil, 0, err
	}
	g, err := f.gradient(ax)
	if err != nil {
		return nil, 0, err
	}

	var (
		xNorm = cmplxs.Norm(x, 2)
		gNorm = cmplxs.Norm(g, 2)
		f0    = f.objective(ax)
		next  = make([]complex128, len(x))
	)
	var resid = gNorm
	if xNorm > 0 {
		resid = gNorm / xNorm
	}
	if gNorm == 0 {
		copy(next, x)
		return next, 0, nil
	}

	if f.tau == 0 {
		f.tau = 1
		if f.kind == flowWirtinger && xNorm > 0 {
			f.tau = 1 / (xNorm * xNorm)
		}
	}

	for ; f.tau >= minStep; f.tau /= 2 {
		cmplxs.AddScaledTo(next, x, complex(-f.tau, 0), g)
		project(next, f.opts)
		if ax, err = f.a.Multiply(next); err != nil {
			return nil, 0, err
		}
		if f.objective(ax) <= f0-armijoC*f.tau*gNorm*gNorm {
			f.tau *= stepGrow
			return next, resid, nil
		}
	}

	// No acceptable step: stay put and retry from a reset step next time.
	f.tau = 0
	copy(next, x)

	return next, resid, nil
}
