package retrieval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/problem"
	"github.com/katalvlaran/phasepack/retrieval"
)

// TestInitialEstimate_Custom returns a copy of CustomX0.
func TestInitialEstimate_Custom(t *testing.T) {
	a, _, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{1, 2i, 3, 4}

	x0, err := retrieval.InitialEstimate(a, b0, opts)
	require.NoError(t, err)
	assert.Equal(t, opts.CustomX0, x0)

	x0[0] = 42
	assert.Equal(t, complex128(1), opts.CustomX0[0])
}

// TestInitialEstimate_SpectralEnergy scales the estimate to ‖A·x0‖ = ‖b0‖.
func TestInitialEstimate_SpectralEnergy(t *testing.T) {
	a, _, b0, err := problem.BuildTestProblem(problem.Config{M: 40, N: 5, IsComplex: true, Seed: 11})
	require.NoError(t, err)

	for _, method := range []retrieval.InitMethod{retrieval.InitOptimal, retrieval.InitSpectral, retrieval.InitTruncated} {
		opts := retrieval.DefaultOptions()
		opts.InitMethod = method

		x0, err := retrieval.InitialEstimate(a, b0, opts)
		require.NoError(t, err, method)
		ax, err := a.Multiply(x0)
		require.NoError(t, err)
		assert.InDelta(t, floats.Norm(b0, 2), cmplxs.Norm(ax, 2), 1e-9, method)
	}
}

// TestInitialEstimate_Identity points at the largest measurement.
func TestInitialEstimate_Identity(t *testing.T) {
	a, _, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()

	x0, err := retrieval.InitialEstimate(a, b0, opts)
	require.NoError(t, err)
	require.Len(t, x0, 4)
	assert.InDelta(t, floats.Norm(b0, 2), real(x0[3]), 1e-9)
	for _, v := range x0[:3] {
		assert.InDelta(t, 0, cmplxs.Norm([]complex128{v}, 2), 1e-9)
	}
}

// TestInitialEstimate_RealProjection drops imaginary parts and clips
// negatives.
func TestInitialEstimate_RealProjection(t *testing.T) {
	a, _, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{1 + 1i, -2, 3i, 4}

	opts.IsComplex = false
	x0, err := retrieval.InitialEstimate(a, b0, opts)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, -2, 0, 4}, x0)

	opts.IsNonNegativeOnly = true
	x0, err = retrieval.InitialEstimate(a, b0, opts)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 0, 0, 4}, x0)
}

// TestInitialEstimate_Errors covers unknown methods and length mismatches.
func TestInitialEstimate_Errors(t *testing.T) {
	a, _, b0 := identityProblem(t)

	opts := retrieval.DefaultOptions()
	opts.InitMethod = "random"
	_, err := retrieval.InitialEstimate(a, b0, opts)
	assert.ErrorIs(t, err, phasepack.ErrConfiguration)

	opts = retrieval.DefaultOptions()
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{1, 2}
	_, err = retrieval.InitialEstimate(a, b0, opts)
	assert.ErrorIs(t, err, phasepack.ErrDimension)

	_, err = retrieval.InitialEstimate(a, b0[:2], retrieval.DefaultOptions())
	assert.ErrorIs(t, err, phasepack.ErrDimension)
}
