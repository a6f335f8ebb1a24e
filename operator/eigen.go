// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/phasepack"
)

const opDominantEigenvector = "operator.DominantEigenvector"

// DominantEigenvector returns the leading eigenvector of the Hermitian matrix
//
//	Y = (1/m) · Aᴴ · diag(w) · A
//
// where w is a length-m weight vector (non-negative for spectral
// initializers, which makes Y positive semi-definite).
//
// Implementation:
//   - Stage 1: validate len(w) == m.
//   - Stage 2 (n ≤ dense limit): materialize Y column by column, embed the
//     Hermitian matrix X + iZ as the real symmetric [[X, −Z], [Z, X]] of order
//     2n and factorize it with mat.EigenSym; the top eigenvector [p; q] maps
//     back to p + i·q.
//   - Stage 2 (n > dense limit): power iteration from a seeded random start,
//     stopping when ‖Y·v − λ·v‖ ≤ tol·|λ|.
//   - Stage 3: normalize to unit norm and rotate the global phase so that the
//     largest-magnitude entry is real and positive.
//
// Errors:
//   - *phasepack.DimensionError when len(w) ≠ m.
//   - phasepack.ErrNumericalFailure on non-finite values or a failed
//     factorization.
//
// Complexity:
//   - Dense path: n forward/adjoint pairs plus O((2n)³) factorization.
//   - Power path: one forward/adjoint pair per iteration.
func DominantEigenvector(op Operator, w []float64, opts ...Option) (EigenResult, error) {
	if op == nil {
		return EigenResult{}, fmt.Errorf("%s: nil operator: %w", opDominantEigenvector, phasepack.ErrConfiguration)
	}
	var m, n = op.Shape()
	if err := phasepack.CheckLen(opDominantEigenvector, m, len(w)); err != nil {
		return EigenResult{}, err
	}

	var (
		o   = gatherOptions(opts...)
		y   = weightedGram{op: op, w: w, scale: 1 / float64(m)}
		res EigenResult
		err error
	)
	if n <= o.denseEigenLimit {
		res, err = y.denseTop(n)
	} else {
		res, err = y.powerTop(n, o)
	}
	if err != nil {
		return EigenResult{}, err
	}

	// Stage 3: unit norm and canonical phase.
	if !phasepack.IsFinite(res.Vector) || math.IsNaN(res.Value) {
		return EigenResult{}, fmt.Errorf("%s: non-finite eigenvector: %w", opDominantEigenvector, phasepack.ErrNumericalFailure)
	}
	normalizeCanonical(res.Vector)

	return res, nil
}

// weightedGram applies Y = scale·Aᴴ·diag(w)·A.
type weightedGram struct {
	op    Operator
	w     []float64
	scale float64
}

func (g weightedGram) apply(v []complex128) ([]complex128, error) {
	av, err := g.op.Multiply(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDominantEigenvector, err)
	}
	for i := range av {
		av[i] *= complex(g.w[i], 0)
	}
	out, err := g.op.AdjointMultiply(av)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDominantEigenvector, err)
	}
	cmplxs.ScaleReal(g.scale, out)

	return out, nil
}

// denseTop materializes Y and factorizes its real symmetric embedding.
func (g weightedGram) denseTop(n int) (EigenResult, error) {
	var (
		cols = make([][]complex128, n)
		e    = make([]complex128, n)
		err  error
		i, j int
	)
	for j = 0; j < n; j++ {
		e[j] = 1
		if cols[j], err = g.apply(e); err != nil {
			return EigenResult{}, err
		}
		e[j] = 0
	}

	// h(i,j) = (Y[i][j] + conj(Y[j][i]))/2 removes rounding asymmetry.
	var h = func(i, j int) complex128 {
		return (cols[j][i] + cmplx.Conj(cols[i][j])) / 2
	}

	var sym = mat.NewSymDense(2*n, nil)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			var hij = h(i, j)
			sym.SetSym(i, j, real(hij))
			sym.SetSym(n+i, n+j, real(hij))
			// Upper-right block holds −Z, lower-left holds Z; Z is antisymmetric.
			sym.SetSym(i, n+j, -imag(hij))
			if i != j {
				sym.SetSym(j, n+i, imag(hij))
			}
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return EigenResult{}, fmt.Errorf("%s: eigen factorization failed: %w", opDominantEigenvector, phasepack.ErrNumericalFailure)
	}
	var (
		values = eig.Values(nil)
		vecs   mat.Dense
		top    = 2*n - 1
		v      = make([]complex128, n)
	)
	eig.VectorsTo(&vecs)
	for i = 0; i < n; i++ {
		v[i] = complex(vecs.At(i, top), vecs.At(n+i, top))
	}

	return EigenResult{Vector: v, Value: values[top], Converged: true}, nil
}

// powerTop runs power iteration from a seeded complex normal start.
func (g weightedGram) powerTop(n int, o Options) (EigenResult, error) {
	var (
		v   = make([]complex128, n)
		yv  []complex128
		res EigenResult
		lam float64
		nrm float64
		err error
	)
	fillComplexNormal(v, normalFromSeed(o.seed, 1))
	cmplxs.ScaleReal(1/cmplxs.Norm(v, 2), v)

	var resid = make([]complex128, n)
	for res.Iterations = 1; res.Iterations <= o.eigenMaxIter; res.Iterations++ {
		if yv, err = g.apply(v); err != nil {
			return EigenResult{}, err
		}
		lam = real(cmplxs.Dot(v, yv))
		nrm = cmplxs.Norm(yv, 2)
		if nrm == 0 {
			// Y·v = 0: v spans the null space and Y has no positive direction.
			res.Vector, res.Value, res.Converged = v, 0, true
			return res, nil
		}
		if math.IsNaN(nrm) || math.IsInf(nrm, 0) {
			return EigenResult{}, fmt.Errorf("%s: non-finite power iterate: %w", opDominantEigenvector, phasepack.ErrNumericalFailure)
		}

		cmplxs.AddScaledTo(resid, yv, complex(-lam, 0), v)
		if cmplxs.Norm(resid, 2) <= o.eigenTol*math.Abs(lam) {
			res.Vector, res.Value, res.Converged = v, lam, true
			return res, nil
		}
		cmplxs.ScaleRealTo(v, 1/nrm, yv)
	}
	res.Iterations = o.eigenMaxIter
	res.Vector, res.Value = v, lam

	return res, nil
}

// normalizeCanonical scales v to unit norm and rotates it so that its
// largest-magnitude entry is real and positive. A zero vector is left as is.
func normalizeCanonical(v []complex128) {
	var nrm = cmplxs.Norm(v, 2)
	if nrm == 0 {
		return
	}
	var idx = cmplxs.MaxAbsIdx(v)
	cmplxs.Scale(cmplx.Conj(phasepack.Sign(v[idx]))/complex(nrm, 0), v)
}
