package flow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for workflow execution.
//
// Metrics exposed (namespace "flowengine"):
//
//	runs_total (counter): finished runs by final status
//	    (completed, paused, failed).
//	steps_total (counter): node visits by node kind and outcome
//	    (success, error).
//	tool_latency_ms (histogram): tool call duration by tool name and
//	    outcome (success, error).
//	inflight_runs (gauge): runs currently executing.
//
// A nil *Metrics is valid and records nothing, so callers that don't
// monitor can leave Options.Metrics unset.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := flow.NewMetrics(registry)
//	engine := flow.New(client, sink, flow.Options{Metrics: metrics})
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
type Metrics struct {
	runs        *prometheus.CounterVec
	steps       *prometheus.CounterVec
	toolLatency *prometheus.HistogramVec
	inflight    prometheus.Gauge
}

// NewMetrics creates and registers the engine metrics with the given
// registry. Pass prometheus.DefaultRegisterer for the global registry,
// or a fresh prometheus.NewRegistry() for isolation.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowengine",
			Name:      "runs_total",
			Help:      "Finished workflow runs by final status",
		}, []string{"status"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowengine",
			Name:      "steps_total",
			Help:      "Node visits by node kind and outcome",
		}, []string{"kind", "status"}),
		toolLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowengine",
			Name:      "tool_latency_ms",
			Help:      "Tool call duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}, []string{"tool", "status"}),
		inflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "flowengine",
			Name:      "inflight_runs",
			Help:      "Workflow runs currently executing",
		}),
	}
}

func (m *Metrics) runStarted() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *Metrics) runFinished(status Status) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	m.runs.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) recordStep(kind NodeKind, status string) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(string(kind), status).Inc()
}

func (m *Metrics) recordToolCall(tool string, latency time.Duration, status string) {
	if m == nil {
		return
	}
	m.toolLatency.WithLabelValues(tool, status).Observe(float64(latency.Milliseconds()))
}
