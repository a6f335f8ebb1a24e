// SPDX-License-Identifier: MIT

package retrieval

import "time"

// State is the engine's lifecycle state.
type State int

const (
	StateInitializing State = iota
	StateIterating
	StateConverged
	StateMaxIterationsReached
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateMaxIterationsReached:
		return "max_iterations_reached"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outs holds per-iteration diagnostics of one solve. Series are appended once
// per completed iteration and never reordered; every enabled series has
// exactly IterationCount entries. Accessors return copies.
type Outs struct {
	solveTimes        []time.Duration
	residuals         []float64
	reconErrors       []float64
	measurementErrors []float64
	iterations        int
	state             State
	err               error
}

// sample is one iteration's record; disabled series are skipped by append.
type sample struct {
	elapsed  time.Duration
	residual float64
	recon    Metric
	measure  Metric
}

func (o *Outs) append(s sample, opts Options) {
	o.iterations++
	if opts.RecordTimes {
		o.solveTimes = append(o.solveTimes, s.elapsed)
	}
	if opts.RecordResiduals {
		o.residuals = append(o.residuals, s.residual)
	}
	if opts.RecordReconErrors && s.recon.Valid {
		o.reconErrors = append(o.reconErrors, s.recon.Value)
	}
	if opts.RecordMeasurementErrors && s.measure.Valid {
		o.measurementErrors = append(o.measurementErrors, s.measure.Value)
	}
}

// SolveTimes returns wall-clock time since solve start at each iteration.
func (o *Outs) SolveTimes() []time.Duration { return append([]time.Duration(nil), o.solveTimes...) }

// Residuals returns the algorithm-defined residual of each iteration.
func (o *Outs) Residuals() []float64 { return append([]float64(nil), o.residuals...) }

// ReconErrors returns the phase-aligned relative reconstruction errors.
func (o *Outs) ReconErrors() []float64 { return append([]float64(nil), o.reconErrors...) }

// MeasurementErrors returns ‖|A·x̂| − b0‖ / ‖b0‖ per iteration.
func (o *Outs) MeasurementErrors() []float64 { return append([]float64(nil), o.measurementErrors...) }

// IterationCount returns the number of completed iterations.
func (o *Outs) IterationCount() int { return o.iterations }

// State returns the terminal (or current) engine state.
func (o *Outs) State() State { return o.state }

// Err returns the error that moved the engine to StateFailed, if any.
func (o *Outs) Err() error { return o.err }
