// SPDX-License-Identifier: MIT

// Package operator: functional configuration for operator construction and
// the numeric kernels (adjoint check, eigen solver). This file defines:
//   - Option / Options (functional options with unexported state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper that applies setters over the defaults.
package operator

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSeed is used when callers pass seed==0.
	DefaultSeed int64 = 1

	// DefaultAdjointTolerance bounds the relative inner-product discrepancy
	// |⟨Ax,y⟩ − ⟨x,Aᴴy⟩| / |⟨Ax,y⟩| accepted by VerifyAdjoint.
	DefaultAdjointTolerance = 1e-3

	// DefaultEigenTolerance is the relative eigen-residual ‖Yv − λv‖ ≤ tol·|λ|
	// at which power iteration stops.
	DefaultEigenTolerance = 1e-5

	// DefaultEigenMaxIter caps power iterations.
	DefaultEigenMaxIter = 1000

	// DefaultDenseEigenLimit is the largest n for which DominantEigenvector
	// materializes Y and factorizes it densely instead of iterating.
	DefaultDenseEigenLimit = 128
)

// ---------- Internal panic messages ----------

const (
	panicAdjointTolInvalid = "operator: WithAdjointTolerance: tol must be finite and > 0"
	panicEigenTolInvalid   = "operator: WithEigenTolerance: tol must be finite and > 0"
	panicEigenIterInvalid  = "operator: WithEigenMaxIter: maxIter must be > 0"
	panicDenseLimitInvalid = "operator: WithDenseEigenLimit: limit must be >= 0"
)

// Option mutates internal options. Safe to apply repeatedly.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	seed            int64   // 0 ⇒ DefaultSeed
	adjointTol      float64 // DefaultAdjointTolerance
	eigenTol        float64 // DefaultEigenTolerance
	eigenMaxIter    int     // DefaultEigenMaxIter
	denseEigenLimit int     // DefaultDenseEigenLimit
}

// WithSeed sets the seed of the random stream used by the adjoint check and
// the power-iteration start vector. seed==0 selects DefaultSeed.
//
// Notes:
//   - VerifyAdjoint is probabilistic; if a suspicious operator passes, re-run
//     it with a different seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithAdjointTolerance sets the relative tolerance of the adjoint check.
// Panics when tol is not finite or not positive.
func WithAdjointTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicAdjointTolInvalid)
	}

	return func(o *Options) { o.adjointTol = tol }
}

// WithEigenTolerance sets the power-iteration stopping tolerance.
// Panics when tol is not finite or not positive.
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicEigenTolInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithEigenMaxIter caps the number of power iterations.
// Panics when maxIter ≤ 0.
func WithEigenMaxIter(maxIter int) Option {
	if maxIter <= 0 {
		panic(panicEigenIterInvalid)
	}

	return func(o *Options) { o.eigenMaxIter = maxIter }
}

// WithDenseEigenLimit sets the largest signal length n for which the dense
// eigen path is taken. 0 forces power iteration for every size.
// Panics when limit < 0.
func WithDenseEigenLimit(limit int) Option {
	if limit < 0 {
		panic(panicDenseLimitInvalid)
	}

	return func(o *Options) { o.denseEigenLimit = limit }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		seed:            DefaultSeed,
		adjointTol:      DefaultAdjointTolerance,
		eigenTol:        DefaultEigenTolerance,
		eigenMaxIter:    DefaultEigenMaxIter,
		denseEigenLimit: DefaultDenseEigenLimit,
	}
}

// gatherOptions applies setters in order over the defaults; nil setters are skipped.
func gatherOptions(opts ...Option) Options {
	var o = defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.seed == 0 {
		o.seed = DefaultSeed
	}

	return o
}
