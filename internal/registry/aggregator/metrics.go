package aggregator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bukuinduk/internal/registry/models"
)

// Metrics covers domain fetches and whole aggregations.
type Metrics struct {
	FetchLatency     *prometheus.HistogramVec
	FetchFailures    *prometheus.CounterVec
	DegradedSections *prometheus.CounterVec
	AggregateLatency prometheus.Histogram
	CacheRequests    *prometheus.CounterVec
	BreakerState     *prometheus.GaugeVec
}

// NewMetrics registers aggregator metrics on reg. A nil reg builds
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bukuinduk_registry_fetch_duration_seconds",
			Help:    "Duration of per-domain record fetches",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"domain"}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bukuinduk_registry_fetch_failures_total",
			Help: "Failed domain fetches by domain and failure category",
		}, []string{"domain", "category"}),
		DegradedSections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bukuinduk_registry_degraded_sections_total",
			Help: "Sections returned degraded by domain",
		}, []string{"domain"}),
		AggregateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bukuinduk_registry_aggregate_duration_seconds",
			Help:    "Duration of a full registry aggregation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bukuinduk_registry_cache_requests_total",
			Help: "Section cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		BreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bukuinduk_registry_breaker_state",
			Help: "Per-domain circuit breaker state (0=closed, 1=open)",
		}, []string{"domain"}),
	}
}

func (m *Metrics) ObserveFetchLatency(d models.Domain, took time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(string(d)).Observe(took.Seconds())
	}
}

func (m *Metrics) IncFetchFailure(d models.Domain, category string) {
	if m != nil {
		m.FetchFailures.WithLabelValues(string(d), category).Inc()
	}
}

func (m *Metrics) IncDegraded(d models.Domain) {
	if m != nil {
		m.DegradedSections.WithLabelValues(string(d)).Inc()
	}
}

func (m *Metrics) ObserveAggregateLatency(took time.Duration) {
	if m != nil {
		m.AggregateLatency.Observe(took.Seconds())
	}
}

func (m *Metrics) IncCache(result string) {
	if m != nil {
		m.CacheRequests.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) SetBreakerState(d models.Domain, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerState.WithLabelValues(string(d)).Set(v)
}
