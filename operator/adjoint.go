// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/phasepack"
)

const opVerifyAdjoint = "operator.VerifyAdjoint"

// VerifyAdjoint checks that op's adjoint product is the adjoint of its
// forward product.
//
// Implementation:
//   - Stage 1: draw real random y ∈ ℝᵐ and x ∈ ℝⁿ from the seeded stream.
//   - Stage 2: compute p1 = (A·x)ᴴ·y and p2 = xᴴ·(Aᴴ·y).
//   - Stage 3: fail when |p1 − p2| / |p1| exceeds the tolerance.
//
// Behavior highlights:
//   - Probabilistic: an unlucky draw may accept a wrong adjoint. Use WithSeed
//     to repeat the check on a different draw.
//   - p1 = p2 = 0 (zero operator with zero adjoint) passes.
//
// Errors:
//   - *phasepack.AdjointError (matches phasepack.ErrAdjointMismatch).
//   - errors from op's products (dimension mismatch of returned vectors).
//
// Complexity: one forward and one adjoint product, O(m + n) extra memory.
func VerifyAdjoint(op Operator, opts ...Option) error {
	if op == nil {
		return fmt.Errorf("%s: nil operator: %w", opVerifyAdjoint, phasepack.ErrConfiguration)
	}

	return verifyAdjoint(op, gatherOptions(opts...))
}

func verifyAdjoint(op Operator, o Options) error {
	var (
		m, n = op.Shape()
		dist = normalFromSeed(o.seed, 1)
		x    = make([]complex128, n)
		y    = make([]complex128, m)
	)
	// Stage 1: random real probes.
	fillRealNormal(y, dist)
	fillRealNormal(x, dist)

	// Stage 2: both inner products.
	ax, err := op.Multiply(x)
	if err != nil {
		return fmt.Errorf("%s: %w", opVerifyAdjoint, err)
	}
	aty, err := op.AdjointMultiply(y)
	if err != nil {
		return fmt.Errorf("%s: %w", opVerifyAdjoint, err)
	}

	var (
		p1     = cmplxs.Dot(ax, y)
		p2     = cmplxs.Dot(x, aty)
		relErr float64
	)

	// Stage 3: relative discrepancy.
	switch {
	case p1 == 0 && p2 == 0:
		relErr = 0
	case p1 == 0:
		relErr = math.Inf(1)
	default:
		relErr = cmplx.Abs(p1-p2) / cmplx.Abs(p1)
	}
	if math.IsNaN(relErr) || relErr > o.adjointTol {
		return &phasepack.AdjointError{RelErr: relErr, Tol: o.adjointTol}
	}

	return nil
}
