package pipeline

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "nanoindent"

// Lookup outcomes.
const (
	resultHit  = "hit"
	resultMiss = "miss"
)

// Computation outcomes.
const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
)

// Metrics instruments the executor. Every Metrics owns its registry, so several
// executors can coexist in one process.
type Metrics struct {
	registry     *prometheus.Registry
	lookups      *prometheus.CounterVec
	computations *prometheus.CounterVec
	stageSeconds *prometheus.HistogramVec
	requests     *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors together with the Go runtime and process
// collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Cache lookups per stage, by hit or miss.",
			},
			[]string{"stage", "result"},
		),
		computations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "computations_total",
				Help:      "Per-curve computations of cache misses, by outcome.",
			},
			[]string{"stage", "outcome"},
		),
		stageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "stage_duration_seconds",
				Help:      "Wall time of one stage over one batch.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"stage"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "pipeline",
				Name:      "requests_total",
				Help:      "Processed requests by kind and status.",
			},
			[]string{"kind", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeStage(stage string, hits, misses, notFound int, elapsed time.Duration) {
	m.lookups.WithLabelValues(stage, resultHit).Add(float64(hits))
	m.lookups.WithLabelValues(stage, resultMiss).Add(float64(misses))
	m.computations.WithLabelValues(stage, outcomeFound).Add(float64(misses - notFound))
	m.computations.WithLabelValues(stage, outcomeNotFound).Add(float64(notFound))
	m.stageSeconds.WithLabelValues(stage).Observe(elapsed.Seconds())
}

func (m *Metrics) observeRequest(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requests.WithLabelValues(kind, status).Inc()
}
