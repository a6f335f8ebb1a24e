package retrieval_test

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/problem"
	"github.com/katalvlaran/phasepack/retrieval"
)

// TestSolve_IdentityFienup recovers a positive signal through the identity
// operator with default settings.
func TestSolve_IdentityFienup(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Tol = 1e-6
	opts.Xt = xt

	x, outs, _, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.NoError(t, err)
	require.Equal(t, retrieval.StateConverged, outs.State())
	assert.LessOrEqual(t, outs.IterationCount(), 5)

	e, err := phasepack.ReconError(x, xt)
	require.NoError(t, err)
	assert.Less(t, e, 1e-6)
}

// TestSolve_GaussNewtonWarmStart converges from a perturbed true signal.
func TestSolve_GaussNewtonWarmStart(t *testing.T) {
	a, xt, b0, err := problem.BuildTestProblem(problem.Config{M: 10, N: 5, IsComplex: true, Seed: 3})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(5, 5))
	x0 := make([]complex128, len(xt))
	for i := range xt {
		x0[i] = xt[i] + complex(0.01*rng.NormFloat64(), 0.01*rng.NormFloat64())
	}

	opts := retrieval.DefaultOptions()
	opts.Algorithm = retrieval.AlgorithmGaussNewton
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = x0
	opts.Tol = 1e-6
	opts.MaxIters = 1000
	opts.Xt = xt

	x, outs, _, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.NoError(t, err)
	require.Equal(t, retrieval.StateConverged, outs.State())

	e, err := phasepack.ReconError(x, xt)
	require.NoError(t, err)
	assert.Less(t, e, 1e-6)
}

// TestSolve_AllAlgorithmsSpectral runs every built-in strategy from the
// spectral start on a well-oversampled complex problem.
func TestSolve_AllAlgorithmsSpectral(t *testing.T) {
	a, xt, b0, err := problem.BuildTestProblem(problem.Config{M: 48, N: 6, IsComplex: true, Seed: 7})
	require.NoError(t, err)

	for _, alg := range []retrieval.Algorithm{
		retrieval.AlgorithmFienup,
		retrieval.AlgorithmGerchbergSaxton,
		retrieval.AlgorithmGaussNewton,
		retrieval.AlgorithmWirtingerFlow,
		retrieval.AlgorithmAmplitudeFlow,
	} {
		t.Run(string(alg), func(t *testing.T) {
			opts := retrieval.DefaultOptions()
			opts.Algorithm = alg
			opts.InitMethod = retrieval.InitSpectral
			opts.Tol = 1e-5
			opts.MaxIters = 5000
			opts.Xt = xt

			x, outs, resolved, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
			require.NoError(t, err)
			require.Equal(t, retrieval.StateConverged, outs.State(), "after %d iterations", outs.IterationCount())
			assert.Equal(t, alg, resolved.Algorithm)

			e, err := phasepack.ReconError(x, xt)
			require.NoError(t, err)
			assert.Less(t, e, 1e-5)
		})
	}
}

// TestSolve_DiagnosticsLengths checks every recorded series has one entry
// per iteration and that the caller's options stay untouched.
func TestSolve_DiagnosticsLengths(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Algorithm = algHalfway
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{0, 0, 0, 1}
	opts.Tol = 1e-6
	opts.Xt = xt
	opts.RecordReconErrors = true
	opts.RecordMeasurementErrors = true
	before := opts.Clone()

	_, outs, resolved, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.NoError(t, err)
	require.Equal(t, retrieval.StateConverged, outs.State())

	k := outs.IterationCount()
	assert.Greater(t, k, 10)
	assert.Len(t, outs.Residuals(), k)
	assert.Len(t, outs.SolveTimes(), k)
	assert.Len(t, outs.ReconErrors(), k)
	assert.Len(t, outs.MeasurementErrors(), k)
	assert.Less(t, outs.ReconErrors()[k-1], 1e-6)
	assert.IsNonDecreasing(t, outs.SolveTimes())

	assert.Empty(t, cmp.Diff(before, opts), "caller options mutated")
	assert.Empty(t, cmp.Diff(before, resolved))
}

// TestSolve_RecordingDisabled leaves the optional series empty.
func TestSolve_RecordingDisabled(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Algorithm = algHalfway
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{0, 0, 0, 1}
	opts.Xt = xt
	opts.RecordResiduals = false
	opts.RecordTimes = false

	_, outs, _, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.NoError(t, err)
	assert.Positive(t, outs.IterationCount())
	assert.Empty(t, outs.Residuals())
	assert.Empty(t, outs.SolveTimes())
	assert.Empty(t, outs.ReconErrors())
	assert.Empty(t, outs.MeasurementErrors())
}

// TestSolve_MaxIterations ends in StateMaxIterationsReached without error.
func TestSolve_MaxIterations(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Algorithm = algHalfway
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{0, 0, 0, 1}
	opts.Xt = xt
	opts.Tol = 1e-12
	opts.MaxIters = 3

	_, outs, _, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.NoError(t, err)
	assert.Equal(t, retrieval.StateMaxIterationsReached, outs.State())
	assert.Equal(t, 3, outs.IterationCount())
	assert.Len(t, outs.Residuals(), 3)
}

// TestSolve_MaxTimeZero stops after the first iteration.
func TestSolve_MaxTimeZero(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Algorithm = algHalfway
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{0, 0, 0, 1}
	opts.Xt = xt
	opts.MaxTime = 0

	_, outs, _, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.NoError(t, err)
	assert.Equal(t, retrieval.StateConverged, outs.State())
	assert.Equal(t, 1, outs.IterationCount())
}

// TestSolve_NonFiniteIterate fails with partial diagnostics and the last
// finite iterate.
func TestSolve_NonFiniteIterate(t *testing.T) {
	a, _, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Algorithm = algNaNAfter
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{0, 0, 0, 0}

	x, outs, _, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	require.ErrorIs(t, err, phasepack.ErrNumericalFailure)
	assert.Equal(t, retrieval.StateFailed, outs.State())
	assert.Equal(t, err, outs.Err())
	assert.Equal(t, 2, outs.IterationCount())
	assert.Len(t, outs.Residuals(), 2)
	assert.Equal(t, []complex128{2, 0, 0, 0}, x)
}

// TestSolve_ContextCanceled fails before the first iteration.
func TestSolve_ContextCanceled(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Xt = xt

	r, err := retrieval.New(a, b0, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x, outs, _, err := r.SolvePhaseRetrieval(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, retrieval.StateFailed, outs.State())
	assert.Zero(t, outs.IterationCount())
	assert.Len(t, x, 4, "initial estimate is still returned")
}

// TestNew_RejectsBadInput covers the validation stages.
func TestNew_RejectsBadInput(t *testing.T) {
	a, xt, b0 := identityProblem(t)

	_, err := retrieval.New(nil, b0, retrieval.DefaultOptions())
	assert.ErrorIs(t, err, phasepack.ErrConfiguration)

	_, err = retrieval.New(a, b0[:3], retrieval.DefaultOptions())
	assert.ErrorIs(t, err, phasepack.ErrDimension)

	_, err = retrieval.New(a, []float64{1, -2, 3, 4}, retrieval.DefaultOptions())
	assert.ErrorIs(t, err, phasepack.ErrConfiguration)

	opts := retrieval.DefaultOptions()
	opts.Xt = xt[:2]
	_, err = retrieval.New(a, b0, opts)
	var de *phasepack.DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 4, de.Want)
	assert.Equal(t, 2, de.Got)

	opts = retrieval.DefaultOptions()
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{1}
	_, err = retrieval.New(a, b0, opts)
	assert.ErrorIs(t, err, phasepack.ErrDimension)

	opts = retrieval.DefaultOptions()
	opts.Tol = -1
	_, _, resolved, err := retrieval.SolvePhaseRetrieval(a, b0, opts)
	assert.ErrorIs(t, err, phasepack.ErrConfiguration)
	assert.Equal(t, -1.0, resolved.Tol)
}

// TestSolve_VerboseLogging checks the per-iteration log lines at verbose 2.
func TestSolve_VerboseLogging(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	opts := retrieval.DefaultOptions()
	opts.Algorithm = algHalfway
	opts.InitMethod = retrieval.InitCustom
	opts.CustomX0 = []complex128{0, 0, 0, 1}
	opts.Xt = xt
	opts.Verbose = 2

	core, logs := observer.New(zap.InfoLevel)
	r, err := retrieval.New(a, b0, opts, retrieval.WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, outs, _, err := r.SolvePhaseRetrieval(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("phase retrieval started").Len())
	assert.Equal(t, outs.IterationCount(), logs.FilterMessage("iteration").Len())
	finished := logs.FilterMessage("phase retrieval finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "converged", finished[0].ContextMap()["state"])

	// measurement error is computed for logging even when not recorded
	assert.Empty(t, outs.MeasurementErrors())
	assert.Contains(t, logs.FilterMessage("iteration").All()[0].ContextMap(), "measurement_error")
}

// TestSolve_Metrics records one solve per terminal state.
func TestSolve_Metrics(t *testing.T) {
	a, xt, b0 := identityProblem(t)
	reg := prometheus.NewRegistry()
	m := retrieval.NewMetrics(reg)

	opts := retrieval.DefaultOptions()
	opts.Xt = xt
	r, err := retrieval.New(a, b0, opts, retrieval.WithMetrics(m))
	require.NoError(t, err)
	_, _, _, err = r.SolvePhaseRetrieval(context.Background())
	require.NoError(t, err)

	const want = `
# HELP phasepack_solves_total Completed phase retrieval solves by algorithm and terminal state.
# TYPE phasepack_solves_total counter
phasepack_solves_total{algorithm="fienup",state="converged"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "phasepack_solves_total"))

	n, err := testutil.GatherAndCount(reg, "phasepack_solve_iterations", "phasepack_solve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
