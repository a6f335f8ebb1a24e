// SPDX-License-Identifier: MIT

// Package retrieval - recovery engine.
//
// This file provides the canonical entry points:
//
//   - New: validate operator, measurements and options; bind a logger and
//     metrics.
//   - (*Retriever).SolvePhaseRetrieval: run the control loop (initialize,
//     step, record, consult StopNow) for the configured algorithm.
//   - SolvePhaseRetrieval: one-shot convenience wrapper.
//
// Design principles:
//   - The engine owns only the control loop; update rules live in Solvers.
//   - The caller's Options are never mutated; the resolved copy is returned.
//   - Failures keep the last finite iterate and the diagnostics gathered so far.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/internal/logger"
	"github.com/katalvlaran/phasepack/operator"
)

const opSolve = "retrieval.SolvePhaseRetrieval"

// Retriever binds one problem (operator, measurements, options) to the engine.
// It is not safe for concurrent SolvePhaseRetrieval calls; build one
// Retriever per goroutine (operators may be shared).
type Retriever struct {
	a       operator.Operator
	b0      []float64
	opts    Options
	log     *zap.Logger
	metrics *Metrics
}

// Setting customizes a Retriever.
type Setting func(*Retriever)

// WithLogger routes verbose output to log.
func WithLogger(log *zap.Logger) Setting {
	return func(r *Retriever) { r.log = log }
}

// WithMetrics records solve outcomes in m.
func WithMetrics(m *Metrics) Setting {
	return func(r *Retriever) { r.metrics = m }
}

// New validates its inputs and returns a Retriever.
//
// Implementation:
//   - Stage 1: Options.Validate (names, ranges).
//   - Stage 2: len(b0) == m; b0 finite and non-negative.
//   - Stage 3: lazily-checked vectors: CustomX0 (custom init) and Xt have length n.
//
// Errors: phasepack.ErrConfiguration or *phasepack.DimensionError.
func New(a operator.Operator, b0 []float64, opts Options, settings ...Setting) (*Retriever, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: nil operator: %w", opSolve, phasepack.ErrConfiguration)
	}

	// Stage 1: options.
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Stage 2: measurements.
	var m, n = a.Shape()
	if err := phasepack.CheckLen(opSolve+": measurements", m, len(b0)); err != nil {
		return nil, err
	}
	for i, v := range b0 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%s: measurement %d = %g must be finite and >= 0: %w", opSolve, i, v, phasepack.ErrConfiguration)
		}
	}

	// Stage 3: vectors whose length depends on n.
	if opts.InitMethod == InitCustom {
		if err := phasepack.CheckLen(opSolve+": customx0", n, len(opts.CustomX0)); err != nil {
			return nil, err
		}
	}
	if opts.Xt != nil {
		if err := phasepack.CheckLen(opSolve+": xt", n, len(opts.Xt)); err != nil {
			return nil, err
		}
	}

	var r = &Retriever{
		a:    a,
		b0:   append([]float64(nil), b0...),
		opts: opts.Clone(),
	}
	for _, s := range settings {
		if s != nil {
			s(r)
		}
	}
	if r.log == nil {
		if r.opts.Verbose > 0 {
			r.log = logger.MustNewLogger(logger.FormatText, "info")
		} else {
			r.log = zap.NewNop()
		}
	}

	return r, nil
}

// SolvePhaseRetrieval is New followed by (*Retriever).SolvePhaseRetrieval
// with a background context.
func SolvePhaseRetrieval(a operator.Operator, b0 []float64, opts Options) ([]complex128, *Outs, Options, error) {
	r, err := New(a, b0, opts)
	if err != nil {
		return nil, nil, opts.Clone(), err
	}

	return r.SolvePhaseRetrieval(context.Background())
}

// Options returns a copy of the resolved options.
func (r *Retriever) Options() Options { return r.opts.Clone() }

// SolvePhaseRetrieval runs the solve and returns the estimate, diagnostics
// and the resolved options.
//
// Behavior highlights:
//   - Each iteration: Step, finiteness check, record, StopNow.
//   - ctx is checked between iterations; cancellation ends in StateFailed
//     with ctx.Err().
//   - Non-finite iterates, solver errors or operator errors end in
//     StateFailed with an error matching phasepack.ErrNumericalFailure; the
//     last finite iterate is returned together with the partial *Outs.
//
// Complexity: MaxIters × (cost of one Step + one product when measurement
// errors are recorded).
func (r *Retriever) SolvePhaseRetrieval(ctx context.Context) ([]complex128, *Outs, Options, error) {
	var (
		start = time.Now()
		outs  = &Outs{state: StateInitializing}
		rep   = reporter{log: r.log, verbose: r.opts.Verbose}
		m, n  = r.a.Shape()
	)
	defer func() { r.metrics.observe(r.opts.Algorithm, outs, time.Since(start)) }()
	rep.start(r.opts.Algorithm, r.opts.InitMethod, m, n)

	// Initializing.
	x, err := InitialEstimate(r.a, r.b0, r.opts)
	if err != nil {
		return nil, outs, r.opts.Clone(), r.fail(outs, rep, start, fmt.Errorf("%s: initial estimate: %w", opSolve, err))
	}
	factory, ok := lookup(r.opts.Algorithm)
	if !ok {
		return x, outs, r.opts.Clone(), r.fail(outs, rep, start, fmt.Errorf("%s: algorithm %q: %w", opSolve, r.opts.Algorithm, phasepack.ErrConfiguration))
	}
	solver, err := factory(Problem{A: r.a, B0: r.b0, X0: append([]complex128(nil), x...), Opts: r.opts.Clone()})
	if err != nil {
		return x, outs, r.opts.Clone(), r.fail(outs, rep, start, fmt.Errorf("%s: %s: %w", opSolve, r.opts.Algorithm, err))
	}

	// Iterating.
	outs.state = StateIterating
	for k := 1; k <= r.opts.MaxIters; k++ {
		if err = ctx.Err(); err != nil {
			return x, outs, r.opts.Clone(), r.fail(outs, rep, start, fmt.Errorf("%s: %w", opSolve, err))
		}

		next, resid, err := solver.Step(x)
		if err != nil {
			return x, outs, r.opts.Clone(), r.fail(outs, rep, start, numericalFailure(k, err))
		}
		if len(next) != n {
			return x, outs, r.opts.Clone(), r.fail(outs, rep, start, numericalFailure(k, &phasepack.DimensionError{Op: opSolve, Want: n, Got: len(next)}))
		}
		if !phasepack.IsFinite(next) || math.IsNaN(resid) || math.IsInf(resid, 0) {
			return x, outs, r.opts.Clone(), r.fail(outs, rep, start, numericalFailure(k, errors.New("non-finite iterate")))
		}
		x = next

		s, err := r.measure(x, resid, time.Since(start))
		if err != nil {
			return x, outs, r.opts.Clone(), r.fail(outs, rep, start, numericalFailure(k, err))
		}
		outs.append(s, r.opts)
		rep.iteration(k, s)

		stop, err := StopNow(r.opts, s.elapsed, Some(resid), s.recon)
		if err != nil {
			return x, outs, r.opts.Clone(), r.fail(outs, rep, start, fmt.Errorf("%s: %w", opSolve, err))
		}
		if stop {
			outs.state = StateConverged
			rep.finish(outs, time.Since(start))
			return x, outs, r.opts.Clone(), nil
		}
	}

	outs.state = StateMaxIterationsReached
	rep.finish(outs, time.Since(start))

	return x, outs, r.opts.Clone(), nil
}

// measure builds the iteration sample. Reconstruction error is computed
// whenever Xt is set (the stop rule needs it); measurement error only when
// it is recorded or logged.
func (r *Retriever) measure(x []complex128, resid float64, elapsed time.Duration) (sample, error) {
	var s = sample{elapsed: elapsed, residual: resid}
	if r.opts.Xt != nil {
		e, err := phasepack.ReconError(x, r.opts.Xt)
		if err != nil {
			return s, err
		}
		s.recon = Some(e)
	}
	if r.opts.RecordMeasurementErrors || r.opts.Verbose >= 2 {
		ax, err := r.a.Multiply(x)
		if err != nil {
			return s, err
		}
		e, err := phasepack.MeasurementError(ax, r.b0)
		if err != nil {
			return s, err
		}
		s.measure = Some(e)
	}

	return s, nil
}

// fail moves outs to StateFailed, reports it and returns err.
func (r *Retriever) fail(outs *Outs, rep reporter, start time.Time, err error) error {
	outs.state = StateFailed
	outs.err = err
	rep.finish(outs, time.Since(start))

	return err
}

// numericalFailure tags a per-iteration error with ErrNumericalFailure
// unless it already carries it.
func numericalFailure(k int, err error) error {
	if errors.Is(err, phasepack.ErrNumericalFailure) {
		return fmt.Errorf("%s: iteration %d: %w", opSolve, k, err)
	}

	return fmt.Errorf("%s: iteration %d: %w: %w", opSolve, k, phasepack.ErrNumericalFailure, err)
}
