// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/phasepack"
)

const opLeastSquares = "operator.LeastSquares"

// LeastSquares solves min ‖A·x − b‖₂ with LSQR (Paige & Saunders, 1982),
// touching A only through Multiply and AdjointMultiply.
//
// Implementation:
//   - Stage 1: validate lengths; start from x0 (nil ⇒ zero) with r0 = b − A·x0.
//   - Stage 2: Golub–Kahan bidiagonalization with Givens rotations.
//   - Stage 3: stop when ‖r‖ ≤ btol·‖b‖ + atol·‖A‖·‖x‖ (compatible system)
//     or ‖Aᴴr‖ ≤ atol·‖A‖·‖r‖ (least-squares optimum), with
//     atol = btol = tol/100, or after maxIter steps.
//
// Behavior highlights:
//   - Running out of iterations is not an error; Converged reports it.
//   - All scalar recurrences are real, so the solver is also correct for
//     ℝ-linear maps whose adjoint is taken with respect to Re⟨·,·⟩.
//
// Errors:
//   - *phasepack.DimensionError when len(b) ≠ m or len(x0) ≠ n.
//   - phasepack.ErrConfiguration when tol ≤ 0 or maxIter ≤ 0.
//   - phasepack.ErrNumericalFailure when the iterate becomes non-finite.
//
// Complexity: maxIter forward/adjoint pairs, O(m + n) memory.
func LeastSquares(op Operator, b []complex128, tol float64, maxIter int, x0 []complex128) (LSQRResult, error) {
	// Stage 1: validation.
	if op == nil {
		return LSQRResult{}, fmt.Errorf("%s: nil operator: %w", opLeastSquares, phasepack.ErrConfiguration)
	}
	if !(tol > 0) || maxIter <= 0 {
		return LSQRResult{}, fmt.Errorf("%s: tol=%g maxIter=%d: %w", opLeastSquares, tol, maxIter, phasepack.ErrConfiguration)
	}
	var m, n = op.Shape()
	if err := phasepack.CheckLen(opLeastSquares, m, len(b)); err != nil {
		return LSQRResult{}, err
	}

	var x = make([]complex128, n)
	if x0 != nil {
		if err := phasepack.CheckLen(opLeastSquares, n, len(x0)); err != nil {
			return LSQRResult{}, err
		}
		copy(x, x0)
	}

	var (
		atol  = tol / 100
		btol  = tol / 100
		bnorm = cmplxs.Norm(b, 2)
		u     = append([]complex128(nil), b...)
	)
	if x0 != nil {
		ax, err := op.Multiply(x)
		if err != nil {
			return LSQRResult{}, fmt.Errorf("%s: %w", opLeastSquares, err)
		}
		cmplxs.Sub(u, ax)
	}

	// Stage 2: bidiagonalization start.
	var beta = cmplxs.Norm(u, 2)
	if beta > 0 {
		cmplxs.ScaleReal(1/beta, u)
	}
	v, err := op.AdjointMultiply(u)
	if err != nil {
		return LSQRResult{}, fmt.Errorf("%s: %w", opLeastSquares, err)
	}
	var alpha = cmplxs.Norm(v, 2)
	if alpha > 0 {
		cmplxs.ScaleReal(1/alpha, v)
	}

	var res = LSQRResult{X: x, ResidualNorm: beta}
	if alpha*beta == 0 {
		// b − A·x0 is zero or orthogonal to range(A): x0 is already optimal.
		res.Converged = true
		return res, nil
	}

	var (
		w      = append([]complex128(nil), v...)
		phibar = beta
		rhobar = alpha
		anorm  float64
		xnorm  float64
		arnorm float64

		rho, c, s, theta, phi float64
		av, atu               []complex128
	)

	for res.Iterations = 1; res.Iterations <= maxIter; res.Iterations++ {
		// u ← A·v − α·u
		av, err = op.Multiply(v)
		if err != nil {
			return res, fmt.Errorf("%s: %w", opLeastSquares, err)
		}
		cmplxs.ScaleReal(-alpha, u)
		cmplxs.Add(u, av)
		beta = cmplxs.Norm(u, 2)
		if beta > 0 {
			cmplxs.ScaleReal(1/beta, u)
		}
		anorm = math.Sqrt(anorm*anorm + alpha*alpha + beta*beta)

		// v ← Aᴴ·u − β·v
		atu, err = op.AdjointMultiply(u)
		if err != nil {
			return res, fmt.Errorf("%s: %w", opLeastSquares, err)
		}
		cmplxs.ScaleReal(-beta, v)
		cmplxs.Add(v, atu)
		alpha = cmplxs.Norm(v, 2)
		if alpha > 0 {
			cmplxs.ScaleReal(1/alpha, v)
		}

		// Plane rotation eliminating β.
		rho = math.Hypot(rhobar, beta)
		c = rhobar / rho
		s = beta / rho
		theta = s * alpha
		rhobar = -c * alpha
		phi = c * phibar
		phibar = s * phibar

		// x ← x + (φ/ρ)·w ; w ← v − (θ/ρ)·w
		cmplxs.AddScaled(x, complex(phi/rho, 0), w)
		cmplxs.ScaleReal(-theta/rho, w)
		cmplxs.Add(w, v)

		if !phasepack.IsFinite(x) {
			res.ResidualNorm = phibar
			return res, fmt.Errorf("%s: non-finite iterate at step %d: %w", opLeastSquares, res.Iterations, phasepack.ErrNumericalFailure)
		}

		// Stage 3: stopping rules.
		res.ResidualNorm = phibar
		arnorm = alpha * math.Abs(c) * phibar
		xnorm = cmplxs.Norm(x, 2)
		if phibar <= btol*bnorm+atol*anorm*xnorm || arnorm <= atol*anorm*phibar {
			res.Converged = true
			return res, nil
		}
	}
	res.Iterations = maxIter

	return res, nil
}
