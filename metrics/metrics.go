// Package metrics publishes Prometheus metrics for client request activity.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder publishes Prometheus metrics for requests issued through a web
// client. A nil *Recorder is valid and records nothing, so callers never
// need to branch on whether instrumentation is enabled.
type Recorder struct {
	gatherer prometheus.Gatherer
	handler  http.Handler

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewRecorder constructs a Prometheus-backed Recorder. When reg is nil a
// dedicated registry is created, with process and Go runtime collectors
// attached, so multiple recorders can coexist without conflicting with the
// global default registerer. A caller-supplied registry is used as-is.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agora",
		Subsystem: "web",
		Name:      "requests_total",
		Help:      "Total requests issued against the node, by method and status.",
	}, []string{"method", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "agora",
		Subsystem: "web",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for completed requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method"})

	reg.MustRegister(requests, latency)

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return &Recorder{
		gatherer: reg,
		handler:  handler,
		requests: requests,
		latency:  latency,
	}
}

// Handler exposes the Prometheus HTTP handler for the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "metrics unavailable", http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// Gatherer returns the underlying Prometheus gatherer for tests and advanced
// integrations.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.gatherer
}

// ObserveRequest records one completed (or failed) request. A statusCode of
// zero or below means no response arrived and is labeled "none".
func (r *Recorder) ObserveRequest(method string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	methodLabel := normalizeLabel(method)
	statusLabel := strconv.Itoa(statusCode)
	if statusCode <= 0 {
		statusLabel = "none"
	}
	r.requests.WithLabelValues(methodLabel, statusLabel).Inc()
	r.latency.WithLabelValues(methodLabel).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
