package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "placement_portal"

// Metrics holds the Prometheus collectors of the portal. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RAGCalls        *prometheus.CounterVec
	RAGDuration     *prometheus.HistogramVec
	ChatResponses   *prometheus.CounterVec
	Submissions     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RAGCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rag",
				Name:      "calls_total",
				Help:      "Calls to the study-assistant service by call type and outcome",
			},
			[]string{"call", "outcome"},
		),
		RAGDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rag",
				Name:      "call_duration_seconds",
				Help:      "Study-assistant call duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"call"},
		),
		ChatResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "chat",
				Name:      "responses_total",
				Help:      "Chat responses by serving mode",
			},
			[]string{"mode"},
		),
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "assessment",
				Name:      "submissions_total",
				Help:      "Submitted attempts by pass status",
			},
			[]string{"pass_status"},
		),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveRAGCall(call, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RAGCalls.WithLabelValues(call, outcome).Inc()
	m.RAGDuration.WithLabelValues(call).Observe(d.Seconds())
}

func (m *Metrics) ObserveChatResponse(mode string) {
	if m == nil {
		return
	}
	m.ChatResponses.WithLabelValues(mode).Inc()
}

func (m *Metrics) ObserveSubmission(passStatus string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(passStatus).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
