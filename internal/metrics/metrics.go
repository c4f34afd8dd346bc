package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tlp/transport"
)

const namespace = "tlp"

// Metrics holds the solver collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	solves     *prometheus.CounterVec
	duration   prometheus.Histogram
	iterations prometheus.Histogram
	size       prometheus.Histogram
	dummies    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solves by terminal status.",
		}, []string{"status", "source"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_iterations",
			Help:      "MODI pivots per optimal solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		size: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "problem_cells",
			Help:      "Cost matrix cells (m*n) of solved problems.",
			Buckets:   prometheus.ExponentialBuckets(4, 4, 8),
		}),
		dummies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balanced_total",
			Help:      "Unbalanced problems padded with a dummy side.",
		}, []string{"side"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.solves, m.duration, m.iterations, m.size, m.dummies,
	)
	return m
}

// ObserveSolve records one finished solve.
func (m *Metrics) ObserveSolve(source string, p transport.Problem, dummy transport.DummyKind, res transport.Result, took time.Duration) {
	m.solves.WithLabelValues(string(res.Status), source).Inc()
	m.duration.Observe(took.Seconds())
	m.size.Observe(float64(p.NumSuppliers() * p.NumConsumers()))
	if res.IsOptimal() {
		m.iterations.Observe(float64(res.Iterations))
	}
	if dummy != transport.DummyNone {
		m.dummies.WithLabelValues(dummy.String()).Inc()
	}
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
