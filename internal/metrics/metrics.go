// Package metrics exposes pipeline Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopintent/backend/internal/domain"
)

const namespace = "shopintent"

// Metrics holds the collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	PipelineRequests   *prometheus.CounterVec
	IntentVerdicts     *prometheus.CounterVec
	ProductResolutions *prometheus.CounterVec
	UpstreamDuration   *prometheus.HistogramVec
}

// New registers all collectors, plus Go runtime and process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PipelineRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_requests_total",
			Help:      "Parsed user inputs by pipeline branch (text, url)",
		}, []string{"branch"}),
		IntentVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_verdicts_total",
			Help:      "Intent verdicts by result and how they were reached",
		}, []string{"intent", "outcome"}),
		ProductResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_resolutions_total",
			Help:      "Product link resolutions by platform and source of the record",
		}, []string{"platform", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Latency of outbound calls to the model and product providers",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"upstream"}),
	}

	reg.MustRegister(
		m.PipelineRequests,
		m.IntentVerdicts,
		m.ProductResolutions,
		m.UpstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordBranch counts one parsed input on the given pipeline branch.
func (m *Metrics) RecordBranch(branch string) {
	m.PipelineRequests.WithLabelValues(branch).Inc()
}

// RecordVerdict counts one intent verdict and how it was reached.
func (m *Metrics) RecordVerdict(intent bool, outcome string) {
	m.IntentVerdicts.WithLabelValues(strconv.FormatBool(intent), outcome).Inc()
}

// RecordResolution counts one product resolution by platform and outcome.
func (m *Metrics) RecordResolution(platform domain.PlatformID, outcome string) {
	m.ProductResolutions.WithLabelValues(platform.String(), outcome).Inc()
}

// ObserveUpstream records the latency of one outbound call.
func (m *Metrics) ObserveUpstream(upstream string, seconds float64) {
	m.UpstreamDuration.WithLabelValues(upstream).Observe(seconds)
}

// Nop discards every event. Constructors fall back to it when given a nil recorder.
type Nop struct{}

func (Nop) RecordBranch(string) {}

func (Nop) RecordVerdict(bool, string) {}

func (Nop) RecordResolution(domain.PlatformID, string) {}

func (Nop) ObserveUpstream(string, float64) {}

var (
	_ domain.MetricsRecorder = (*Metrics)(nil)
	_ domain.MetricsRecorder = Nop{}
)
