// Package phasepack recovers a signal from phaseless linear measurements.
//
// Given a linear measurement operator A (m×n) and magnitudes b0 = |A·x|,
// phasepack estimates x up to a global phase factor.
//
// 🚀 What is inside?
//
//	• operator/    measurement operators: dense matrices, forward/adjoint
//	               function pairs and masked 2-D Fourier transforms, each
//	               adjoint-verified at construction, plus LSQR least squares
//	               and dominant-eigenvector extraction
//	• retrieval/   the recovery engine: options, initializers (spectral,
//	               truncated, custom), algorithm registry (Fienup,
//	               Gerchberg–Saxton, Gauss–Newton, Wirtinger flow, amplitude
//	               flow), stopping rules and per-iteration diagnostics
//	• problem/     reproducible synthetic test problems
//	• cmd/phaseret command-line front-end
//
// The root package holds the error taxonomy shared by all subpackages and a
// few complex-vector helpers (Sign, AlignPhase, ReconError, MeasurementError).
//
// Quick start:
//
//	A, xt, b0, _ := problem.BuildTestProblem(problem.Config{M: 48, N: 6, IsComplex: true})
//	opts := retrieval.DefaultOptions()
//	opts.Algorithm = retrieval.AlgorithmFienup
//	opts.Xt = xt
//	x, outs, _, err := retrieval.SolvePhaseRetrieval(A, b0, opts)
//
//	go get github.com/katalvlaran/phasepack
package phasepack
