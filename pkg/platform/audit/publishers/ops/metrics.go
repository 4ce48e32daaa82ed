package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "bukuinduk/pkg/platform/audit"
)

// Event results recorded per action.
const (
	ResultTracked = "tracked"
	ResultSampled = "sampled"
	ResultDropped = "dropped"
	ResultFailed  = "failed"
)

// Metrics counts audit events by action and result.
type Metrics struct {
	Events      *prometheus.CounterVec
	StoreHealth prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bukuinduk_audit_events_total",
			Help: "Audit events by action and result (tracked, sampled, dropped, failed)",
		}, []string{"action", "result"}),
		StoreHealth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bukuinduk_audit_store_unavailable",
			Help: "1 while the audit store breaker is open",
		}),
	}
}

func (m *Metrics) observe(action audit.Action, result string) {
	if m != nil {
		m.Events.WithLabelValues(string(action), result).Inc()
	}
}

func (m *Metrics) setUnavailable(open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.StoreHealth.Set(v)
}
