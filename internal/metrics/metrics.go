// Package metrics holds the Prometheus collectors for hirelens.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeStarted   = "started"
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Metrics provides observability for catalog fetches and mock analyses.
// All methods are safe on a nil receiver.
type Metrics struct {
	reg *prometheus.Registry

	// Collection fetches by collection and result ("ok", "error")
	CollectionFetches *prometheus.CounterVec
	FetchLatency      *prometheus.HistogramVec

	// Analysis lifecycle by kind and outcome
	Analyses         *prometheus.CounterVec
	AnalysesInFlight prometheus.Gauge

	Feedback *prometheus.CounterVec
}

// New creates a Metrics instance registered on a private registry, so
// several instances can coexist (tests, mcp subcommand).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		CollectionFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hirelens_collection_fetches_total",
			Help: "Total collection fetches by collection and result",
		}, []string{"collection", "result"}),

		FetchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hirelens_collection_fetch_duration_seconds",
			Help:    "Duration of collection fetches from the CMS source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"collection"}),

		Analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hirelens_analyses_total",
			Help: "Mock analyses by kind and outcome",
		}, []string{"kind", "outcome"}),

		AnalysesInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "hirelens_analyses_in_flight",
			Help: "Analyses waiting for their delay to elapse",
		}),

		Feedback: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hirelens_feedback_submissions_total",
			Help: "Accepted feedback submissions by type",
		}, []string{"type"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// ObserveFetch records one collection fetch.
func (m *Metrics) ObserveFetch(collection string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CollectionFetches.WithLabelValues(collection, result).Inc()
	m.FetchLatency.WithLabelValues(collection).Observe(d.Seconds())
}

// AnalysisStarted counts a scheduled analysis and raises the in-flight gauge.
func (m *Metrics) AnalysisStarted(kind string) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(kind, OutcomeStarted).Inc()
	m.AnalysesInFlight.Inc()
}

// AnalysisFinished records a completed or cancelled analysis.
func (m *Metrics) AnalysisFinished(kind, outcome string) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(kind, outcome).Inc()
	m.AnalysesInFlight.Dec()
}

// AnalysisRejected records a request refused before scheduling.
func (m *Metrics) AnalysisRejected(kind string) {
	if m != nil {
		m.Analyses.WithLabelValues(kind, OutcomeRejected).Inc()
	}
}

// FeedbackAccepted records an accepted feedback submission.
func (m *Metrics) FeedbackAccepted(kind string) {
	if m != nil {
		m.Feedback.WithLabelValues(kind).Inc()
	}
}
