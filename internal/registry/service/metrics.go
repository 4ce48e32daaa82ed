package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "bukuinduk/pkg/domain-errors"
)

// Document outcomes.
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "cancelled"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	Documents       *prometheus.CounterVec
	DocumentPages   prometheus.Histogram
	ComposeLatency  prometheus.Histogram
	ArchiveFailures prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Documents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bukuinduk_registry_documents_total",
			Help: "Registry documents requested, by outcome",
		}, []string{"outcome"}),
		DocumentPages: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bukuinduk_registry_document_pages",
			Help:    "Pages per rendered registry document",
			Buckets: []float64{4, 6, 8, 12, 16, 24, 32, 64},
		}),
		ComposeLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bukuinduk_registry_compose_duration_seconds",
			Help:    "Time spent rendering a registry document",
			Buckets: prometheus.DefBuckets,
		}),
		ArchiveFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "bukuinduk_registry_archive_failures_total",
			Help: "Rendered documents that could not be archived",
		}),
	}
}

func (m *Metrics) IncDocument(outcome string) {
	if m == nil {
		return
	}
	m.Documents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePages(pages int) {
	if m == nil {
		return
	}
	m.DocumentPages.Observe(float64(pages))
}

func (m *Metrics) ObserveComposeLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.ComposeLatency.Observe(d.Seconds())
}

func (m *Metrics) IncArchiveFailure() {
	if m == nil {
		return
	}
	m.ArchiveFailures.Inc()
}

func outcomeOf(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		return OutcomeNotFound
	case dErrors.CodeInvalidArgument, dErrors.CodeBadRequest:
		return OutcomeInvalid
	case dErrors.CodeCancelled:
		return OutcomeCanceled
	}
	return OutcomeFailed
}
