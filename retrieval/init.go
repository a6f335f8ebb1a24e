// SPDX-License-Identifier: MIT

package retrieval

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
)

const opInit = "retrieval.InitialEstimate"

// InitialEstimate produces the starting iterate for opts.InitMethod.
//
// Implementation:
//   - custom: a copy of opts.CustomX0 (length checked against n).
//   - optimal / spectral: leading eigenvector of (1/m)·Aᴴ·diag(b0²)·A.
//   - truncated: as spectral, with weights zeroed where
//     b0_i² > TruncationThreshold²·mean(b0²).
//   - Spectral estimates are scaled so that ‖A·x0‖ = ‖b0‖.
//   - Real problems (IsComplex=false or IsNonNegativeOnly) keep Re(x0).
//
// Errors:
//   - phasepack.ErrConfiguration for an unknown method.
//   - *phasepack.DimensionError for a CustomX0 or b0 of the wrong length.
//   - phasepack.ErrNumericalFailure when A·v vanishes or is non-finite.
func InitialEstimate(a operator.Operator, b0 []float64, opts Options) ([]complex128, error) {
	var m, n = a.Shape()
	if err := phasepack.CheckLen(opInit, m, len(b0)); err != nil {
		return nil, err
	}

	var x0 []complex128
	switch opts.InitMethod {
	case InitCustom:
		if err := phasepack.CheckLen(opInit+": customx0", n, len(opts.CustomX0)); err != nil {
			return nil, err
		}
		x0 = append([]complex128(nil), opts.CustomX0...)
	case InitOptimal, InitSpectral, InitTruncated:
		var w = make([]float64, m)
		floats.MulTo(w, b0, b0)
		if opts.InitMethod == InitTruncated {
			truncateWeights(w, opts.TruncationThreshold)
		}
		var err error
		if x0, err = spectralEstimate(a, b0, w, opts.Seed); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s: unknown init method %q: %w", opInit, opts.InitMethod, phasepack.ErrConfiguration)
	}

	project(x0, opts)

	return x0, nil
}

// truncateWeights zeroes w_i > T²·mean(w) in place.
func truncateWeights(w []float64, threshold float64) {
	if len(w) == 0 {
		return
	}
	var limit = threshold * threshold * floats.Sum(w) / float64(len(w))
	for i, v := range w {
		if v > limit {
			w[i] = 0
		}
	}
}

// spectralEstimate returns the weighted leading eigenvector scaled to the
// measured energy.
func spectralEstimate(a operator.Operator, b0, w []float64, seed int64) ([]complex128, error) {
	eig, err := operator.DominantEigenvector(a, w, operator.WithSeed(seed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInit, err)
	}

	av, err := a.Multiply(eig.Vector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInit, err)
	}
	var avNorm = cmplxs.Norm(av, 2)
	if avNorm == 0 || !phasepack.IsFinite(av) {
		return nil, fmt.Errorf("%s: spectral direction is annihilated by the operator: %w", opInit, phasepack.ErrNumericalFailure)
	}

	var x0 = eig.Vector
	cmplxs.ScaleReal(floats.Norm(b0, 2)/avNorm, x0)

	return x0, nil
}

// project applies the signal constraints of opts to x in place: real part
// only for real problems, and non-negativity when requested.
func project(x []complex128, opts Options) {
	if opts.IsComplex && !opts.IsNonNegativeOnly {
		return
	}
	for i, v := range x {
		var r = real(v)
		if opts.IsNonNegativeOnly && r < 0 {
			r = 0
		}
		x[i] = complex(r, 0)
	}
}
