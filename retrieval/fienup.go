// SPDX-License-Identifier: MIT

package retrieval

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
)

// alternatingProjection implements the Fienup and Gerchberg–Saxton updates.
//
// One step:
//   - Stage 1: measurement projection. Keep the phases of A·x and replace
//     the magnitudes with b0: y = b0 ∘ sign(A·x).
//   - Stage 2: least-squares back-projection x⁺ = argmin ‖A·z − y‖ (LSQR,
//     warm-started at x).
//   - Stage 3: object-domain constraint. Real problems keep Re(x⁺). With
//     non-negativity, Gerchberg–Saxton clips negative entries to zero while
//     Fienup applies hybrid input–output feedback x⁺_i = x_i − β·x⁺_i.
//
// Residual: ‖x⁺ − x‖ / ‖x⁺‖.
type alternatingProjection struct {
	a        operator.Operator
	b0       []float64
	opts     Options
	feedback bool // Fienup HIO instead of hard clipping
}

func newFienup(p Problem) (Solver, error) {
	return &alternatingProjection{a: p.A, b0: p.B0, opts: p.Opts, feedback: true}, nil
}

func newGerchbergSaxton(p Problem) (Solver, error) {
	return &alternatingProjection{a: p.A, b0: p.B0, opts: p.Opts}, nil
}

// Step performs one projection cycle.
func (s *alternatingProjection) Step(x []complex128) ([]complex128, float64, error) {
	// Stage 1: impose measured magnitudes.
	ax, err := s.a.Multiply(x)
	if err != nil {
		return nil, 0, err
	}
	var y = phasepack.SignTo(nil, ax)
	for i := range y {
		y[i] *= complex(s.b0[i], 0)
	}

	// Stage 2: back-project.
	res, err := operator.LeastSquares(s.a, y, s.opts.Tol, s.opts.MaxInnerIters, x)
	if err != nil {
		return nil, 0, fmt.Errorf("back-projection: %w", err)
	}
	var next = res.X

	// Stage 3: object-domain constraint.
	if !s.opts.IsComplex || s.opts.IsNonNegativeOnly {
		for i, v := range next {
			next[i] = complex(real(v), 0)
		}
	}
	if s.opts.IsNonNegativeOnly {
		var beta = s.opts.FienupTuning
		for i, v := range next {
			if real(v) >= 0 {
				continue
			}
			if s.feedback {
				next[i] = complex(real(x[i])-beta*real(v), 0)
			} else {
				next[i] = 0
			}
		}
	}

	return next, relativeChange(next, x), nil
}

// relativeChange returns ‖next − prev‖ / ‖next‖ (absolute when next is zero).
func relativeChange(next, prev []complex128) float64 {
	var diff = make([]complex128, len(next))
	cmplxs.SubTo(diff, next, prev)

	var den = cmplxs.Norm(next, 2)
	if den == 0 {
		return cmplxs.Norm(diff, 2)
	}

	return cmplxs.Norm(diff, 2) / den
}
