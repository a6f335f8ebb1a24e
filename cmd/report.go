package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
	"github.com/katalvlaran/phasepack/retrieval"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

// report summarizes one solve.
type report struct {
	RunID            string            `yaml:"run_id" json:"run_id"`
	Algorithm        string            `yaml:"algorithm" json:"algorithm"`
	State            string            `yaml:"state" json:"state"`
	Iterations       int               `yaml:"iterations" json:"iterations"`
	Elapsed          string            `yaml:"elapsed" json:"elapsed"`
	FinalResidual    *float64          `yaml:"final_residual,omitempty" json:"final_residual,omitempty"`
	ReconError       *float64          `yaml:"recon_error,omitempty" json:"recon_error,omitempty"`
	MeasurementError *float64          `yaml:"measurement_error,omitempty" json:"measurement_error,omitempty"`
	Error            string            `yaml:"error,omitempty" json:"error,omitempty"`
	Options          retrieval.Options `yaml:"options" json:"options"`
}

// newReport evaluates the estimate x against the generated problem.
func newReport(a operator.Operator, b0 []float64, xt, x []complex128, outs *retrieval.Outs, opts retrieval.Options, elapsed time.Duration, solveErr error) report {
	rep := report{
		Algorithm: string(opts.Algorithm),
		Elapsed:   elapsed.Round(time.Microsecond).String(),
		Options:   opts,
	}
	if outs != nil {
		rep.State = outs.State().String()
		rep.Iterations = outs.IterationCount()
		if res := outs.Residuals(); len(res) > 0 {
			rep.FinalResidual = &res[len(res)-1]
		}
	}
	if solveErr != nil {
		rep.Error = solveErr.Error()
	}
	if len(x) == 0 {
		return rep
	}
	if e, err := phasepack.ReconError(x, xt); err == nil {
		rep.ReconError = &e
	}
	if ax, err := a.Multiply(x); err == nil {
		if e, err := phasepack.MeasurementError(ax, b0); err == nil {
			rep.MeasurementError = &e
		}
	}

	return rep
}

// writeReport encodes v as yaml or json.
func writeReport(w io.Writer, format string, v any) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return checkFormat(format)
	}
}

// checkFormat rejects output formats other than yaml and json.
func checkFormat(format string) error {
	if format == outputYAML || format == outputJSON {
		return nil
	}

	return fmt.Errorf("unknown output format %q (want %s or %s): %w", format, outputYAML, outputJSON, phasepack.ErrConfiguration)
}
