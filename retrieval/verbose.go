// SPDX-License-Identifier: MIT

package retrieval

import (
	"time"

	"go.uber.org/zap"
)

// reporter emits verbose progress through zap according to Options.Verbose.
type reporter struct {
	log     *zap.Logger
	verbose int
}

func (r reporter) start(alg Algorithm, init InitMethod, m, n int) {
	if r.verbose < 1 {
		return
	}
	r.log.Info("phase retrieval started",
		zap.String("algorithm", string(alg)),
		zap.String("init_method", string(init)),
		zap.Int("m", m),
		zap.Int("n", n),
	)
}

func (r reporter) iteration(k int, s sample) {
	if r.verbose < 2 {
		return
	}
	var fields = []zap.Field{
		zap.Int("iteration", k),
		zap.Duration("elapsed", s.elapsed),
		zap.Float64("residual", s.residual),
	}
	if s.recon.Valid {
		fields = append(fields, zap.Float64("recon_error", s.recon.Value))
	}
	if s.measure.Valid {
		fields = append(fields, zap.Float64("measurement_error", s.measure.Value))
	}
	r.log.Info("iteration", fields...)
}

func (r reporter) finish(outs *Outs, elapsed time.Duration) {
	if r.verbose < 1 {
		return
	}
	var fields = []zap.Field{
		zap.Stringer("state", outs.State()),
		zap.Int("iterations", outs.IterationCount()),
		zap.Duration("elapsed", elapsed),
	}
	if res := outs.residuals; len(res) > 0 {
		fields = append(fields, zap.Float64("final_residual", res[len(res)-1]))
	}
	if outs.Err() != nil {
		r.log.Warn("phase retrieval failed", append(fields, zap.Error(outs.Err()))...)
		return
	}
	r.log.Info("phase retrieval finished", fields...)
}
