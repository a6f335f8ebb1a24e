// SPDX-License-Identifier: MIT

package retrieval

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "phasepack"

// Metrics records solve outcomes in Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if they are already registered with reg (promauto semantics).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	var factory = promauto.With(reg)

	return &Metrics{
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "solves_total",
			Help:      "Completed phase retrieval solves by algorithm and terminal state.",
		}, []string{"algorithm", "state"}),
		iterations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "solve_iterations",
			Help:      "Outer iterations performed per solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 … 16384
		}, []string{"algorithm"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time per solve.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"algorithm"}),
	}
}

func (m *Metrics) observe(alg Algorithm, outs *Outs, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(string(alg), outs.State().String()).Inc()
	m.iterations.WithLabelValues(string(alg)).Observe(float64(outs.IterationCount()))
	m.duration.WithLabelValues(string(alg)).Observe(elapsed.Seconds())
}
