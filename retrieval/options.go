// SPDX-License-Identifier: MIT

package retrieval

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/phasepack"
)

// Algorithm names a registered recovery strategy.
type Algorithm string

// Built-in algorithms.
const (
	AlgorithmFienup          Algorithm = "fienup"
	AlgorithmGerchbergSaxton Algorithm = "gerchbergsaxton"
	AlgorithmGaussNewton     Algorithm = "gaussnewton"
	AlgorithmWirtingerFlow   Algorithm = "wirtflow"
	AlgorithmAmplitudeFlow   Algorithm = "amplitudeflow"
)

// InitMethod names an initializer.
type InitMethod string

// Supported initializers. InitOptimal and InitSpectral are the same weighted
// spectral method; InitTruncated drops outlier measurements from the weights.
const (
	InitCustom    InitMethod = "custom"
	InitOptimal   InitMethod = "optimal"
	InitSpectral  InitMethod = "spectral"
	InitTruncated InitMethod = "truncated"
)

// Defaults (single source of truth for DefaultOptions).
const (
	DefaultAlgorithm           = AlgorithmFienup
	DefaultInitMethod          = InitOptimal
	DefaultTol                 = 1e-4
	DefaultMaxIters            = 10000
	DefaultMaxTime             = 300 * time.Second
	DefaultMaxInnerIters       = 100
	DefaultFienupTuning        = 0.5
	DefaultTruncationThreshold = 3.0
)

// Options configures a solve.
//
// Fields:
//   - Algorithm: registered strategy name (see Register).
//   - InitMethod: custom | optimal | spectral | truncated.
//   - Tol: convergence tolerance for the stop rule (> 0).
//   - MaxIters: outer iteration cutoff (> 0).
//   - MaxTime: wall-clock cutoff (≥ 0; 0 stops after one iteration).
//   - Verbose: 0 silent, 1 start/finish summary, 2 every iteration.
//   - CustomX0: initial estimate for InitCustom; length n.
//   - Xt: optional true signal; switches the stop rule to
//     reconstruction error and enables its recording.
//   - Record*: which per-iteration series to keep (residuals, recon errors,
//     measurement errors, times). Recon errors need Xt.
//   - MaxInnerIters: LSQR iteration cap for sub-solves.
//   - IsComplex: false projects every iterate onto ℝⁿ.
//   - IsNonNegativeOnly: enforce a real, non-negative signal.
//   - FienupTuning: HIO feedback β used by Fienup with non-negativity.
//   - TruncationThreshold: InitTruncated keeps b_i² ≤ T²·mean(b²).
//   - Seed: stream for randomized kernels; 0 ⇒ default.
//
// The engine works on a copy; the caller's record is never mutated.
type Options struct {
	Algorithm  Algorithm     `yaml:"algorithm" json:"algorithm"`
	InitMethod InitMethod    `yaml:"init_method" json:"init_method"`
	Tol        float64       `yaml:"tol" json:"tol"`
	MaxIters   int           `yaml:"max_iters" json:"max_iters"`
	MaxTime    time.Duration `yaml:"max_time" json:"max_time"`
	Verbose    int           `yaml:"verbose" json:"verbose"`

	CustomX0 []complex128 `yaml:"-" json:"-"`
	Xt       []complex128 `yaml:"-" json:"-"`

	RecordResiduals         bool `yaml:"record_residuals" json:"record_residuals"`
	RecordReconErrors       bool `yaml:"record_recon_errors" json:"record_recon_errors"`
	RecordMeasurementErrors bool `yaml:"record_measurement_errors" json:"record_measurement_errors"`
	RecordTimes             bool `yaml:"record_times" json:"record_times"`

	MaxInnerIters       int     `yaml:"max_inner_iters" json:"max_inner_iters"`
	IsComplex           bool    `yaml:"is_complex" json:"is_complex"`
	IsNonNegativeOnly   bool    `yaml:"is_non_negative_only" json:"is_non_negative_only"`
	FienupTuning        float64 `yaml:"fienup_tuning" json:"fienup_tuning"`
	TruncationThreshold float64 `yaml:"truncation_threshold" json:"truncation_threshold"`
	Seed                int64   `yaml:"seed" json:"seed"`
}

// DefaultOptions returns an Options populated with documented defaults.
func DefaultOptions() Options {
	return Options{
		Algorithm:           DefaultAlgorithm,
		InitMethod:          DefaultInitMethod,
		Tol:                 DefaultTol,
		MaxIters:            DefaultMaxIters,
		MaxTime:             DefaultMaxTime,
		RecordResiduals:     true,
		RecordTimes:         true,
		MaxInnerIters:       DefaultMaxInnerIters,
		IsComplex:           true,
		FienupTuning:        DefaultFienupTuning,
		TruncationThreshold: DefaultTruncationThreshold,
	}
}

// ParseAlgorithm maps a case-insensitive name to a registered Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	var a = Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lookup(a); !ok {
		return "", fmt.Errorf("retrieval: unknown algorithm %q: %w", s, phasepack.ErrConfiguration)
	}

	return a, nil
}

// ParseInitMethod maps a case-insensitive name to an InitMethod.
func ParseInitMethod(s string) (InitMethod, error) {
	var m = InitMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case InitCustom, InitOptimal, InitSpectral, InitTruncated:
		return m, nil
	default:
		return "", fmt.Errorf("retrieval: unknown init method %q: %w", s, phasepack.ErrConfiguration)
	}
}

// Validate checks field ranges and names. Vector lengths are checked later,
// when the engine knows the operator shape.
//
// Errors: phasepack.ErrConfiguration wrapped with the offending field.
func (o Options) Validate() error {
	if _, ok := lookup(o.Algorithm); !ok {
		return optionErr("algorithm", fmt.Sprintf("%q is not registered", o.Algorithm))
	}
	if _, err := ParseInitMethod(string(o.InitMethod)); err != nil {
		return err
	}
	if o.InitMethod == InitCustom && o.CustomX0 == nil {
		return optionErr("customx0", "required by init method \"custom\"")
	}
	if !(o.Tol > 0) || math.IsInf(o.Tol, 1) {
		return optionErr("tol", fmt.Sprintf("%g must be finite and > 0", o.Tol))
	}
	if o.MaxIters <= 0 {
		return optionErr("max_iters", fmt.Sprintf("%d must be > 0", o.MaxIters))
	}
	if o.MaxTime < 0 {
		return optionErr("max_time", fmt.Sprintf("%s must be >= 0", o.MaxTime))
	}
	if o.Verbose < 0 || o.Verbose > 2 {
		return optionErr("verbose", fmt.Sprintf("%d must be 0, 1 or 2", o.Verbose))
	}
	if o.MaxInnerIters <= 0 {
		return optionErr("max_inner_iters", fmt.Sprintf("%d must be > 0", o.MaxInnerIters))
	}
	if math.IsNaN(o.FienupTuning) || math.IsInf(o.FienupTuning, 0) {
		return optionErr("fienup_tuning", "must be finite")
	}
	if !(o.TruncationThreshold > 0) {
		return optionErr("truncation_threshold", fmt.Sprintf("%g must be > 0", o.TruncationThreshold))
	}

	return nil
}

// Clone returns a deep copy; vector fields do not alias the receiver's.
func (o Options) Clone() Options {
	var c = o
	if o.CustomX0 != nil {
		c.CustomX0 = append([]complex128(nil), o.CustomX0...)
	}
	if o.Xt != nil {
		c.Xt = append([]complex128(nil), o.Xt...)
	}

	return c
}

func optionErr(field, msg string) error {
	return fmt.Errorf("retrieval: option %s: %s: %w", field, msg, phasepack.ErrConfiguration)
}
