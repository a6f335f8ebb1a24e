// SPDX-License-Identifier: MIT

package retrieval

import (
	"fmt"
	"time"

	"github.com/katalvlaran/phasepack"
)

// ErrMissingMetric is returned by StopNow when the metric its rule needs is
// undefined. It matches phasepack.ErrConfiguration.
var ErrMissingMetric = fmt.Errorf("retrieval: stop metric undefined: %w", phasepack.ErrConfiguration)

// Metric is an optional scalar. The zero Metric is undefined; a defined
// metric may hold 0.
type Metric struct {
	Value float64
	Valid bool
}

// Some returns a defined Metric holding v.
func Some(v float64) Metric { return Metric{Value: v, Valid: true} }

// StopNow reports whether the solve should stop.
//
// Rules, in order:
//  1. elapsed ≥ opts.MaxTime ⇒ stop.
//  2. opts.Xt set ⇒ reconErr must be defined; stop when reconErr < opts.Tol.
//  3. otherwise resid must be defined; stop when resid < opts.Tol.
//
// The iteration cap is enforced by the engine, not here.
func StopNow(opts Options, elapsed time.Duration, resid, reconErr Metric) (bool, error) {
	if elapsed >= opts.MaxTime {
		return true, nil
	}
	if opts.Xt != nil {
		if !reconErr.Valid {
			return false, fmt.Errorf("reconstruction error with a true signal: %w", ErrMissingMetric)
		}
		return reconErr.Value < opts.Tol, nil
	}
	if !resid.Valid {
		return false, fmt.Errorf("residual: %w", ErrMissingMetric)
	}

	return resid.Value < opts.Tol, nil
}
