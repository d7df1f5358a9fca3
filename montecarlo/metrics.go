// SPDX-License-Identifier: MIT

package montecarlo

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "unfold"

// Outcome label values of the draws counter.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Input label values of the clipped-cells counter.
const (
	inputCounts   = "counts"
	inputResponse = "response"
)

// Metrics exports Monte Carlo run statistics to Prometheus. A single Metrics
// may be shared by concurrent runs.
type Metrics struct {
	draws      *prometheus.CounterVec
	clipped    *prometheus.CounterVec
	redraws    prometheus.Counter
	iterations prometheus.Histogram
	duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "montecarlo",
			Name:      "draws_total",
			Help:      "Monte Carlo draws by outcome.",
		}, []string{"outcome"}),
		clipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "montecarlo",
			Name:      "clipped_cells_total",
			Help:      "Negative samples clipped to zero, by input.",
		}, []string{"input"}),
		redraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "montecarlo",
			Name:      "redraws_total",
			Help:      "Negative samples resampled under the redraw policy.",
		}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Iterations of successful iterative solves.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 15),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "montecarlo",
			Name:      "run_duration_seconds",
			Help:      "Wall time of Propagate runs.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.draws, m.clipped, m.redraws, m.iterations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// observe records one finished run. Nil-safe.
func (m *Metrics) observe(h Health, iterations []int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.draws.WithLabelValues(outcomeSuccess).Add(float64(h.Succeeded))
	m.draws.WithLabelValues(outcomeFailure).Add(float64(h.Failed))
	m.clipped.WithLabelValues(inputCounts).Add(float64(h.ClippedCounts))
	m.clipped.WithLabelValues(inputResponse).Add(float64(h.ClippedResponse))
	m.redraws.Add(float64(h.Redrawn))
	for _, it := range iterations {
		m.iterations.Observe(float64(it))
	}
	m.duration.Observe(elapsed.Seconds())
}
