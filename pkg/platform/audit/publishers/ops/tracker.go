// Package ops provides a best-effort audit tracker for operational events.
//
// Track never fails the caller: sampled-out events are counted, store
// failures are logged, and a circuit breaker drops events while the store
// is unhealthy.
package ops

import (
	"context"
	"log/slog"
	"time"

	audit "bukuinduk/pkg/platform/audit"
	"bukuinduk/pkg/platform/circuit"
)

type Tracker struct {
	store   audit.Store
	sampler *Sampler
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *Metrics
	timeout time.Duration
}

type Option func(*Tracker)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

func WithSampler(s *Sampler) Option {
	return func(t *Tracker) {
		t.sampler = s
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(t *Tracker) {
		t.breaker = b
	}
}

// WithTimeout bounds each store write.
func WithTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.timeout = d
		}
	}
}

func New(store audit.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		sampler: NewSampler(1),
		breaker: circuit.New("audit_ops", circuit.WithFailureThreshold(5), circuit.WithCooldown(time.Minute)),
		logger:  slog.Default(),
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track persists event on a best-effort basis.
func (t *Tracker) Track(ctx context.Context, event audit.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if !t.sampler.ShouldSample(string(event.Action)) {
		t.metrics.observe(event.Action, ResultSampled)
		return
	}
	if !t.breaker.Allow() {
		t.metrics.observe(event.Action, ResultDropped)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
	defer cancel()

	if err := t.store.Append(writeCtx, event); err != nil {
		t.metrics.observe(event.Action, ResultFailed)
		_, change := t.breaker.RecordFailure()
		if change.Opened {
			t.metrics.setUnavailable(true)
		}
		t.logger.WarnContext(ctx, "audit event not persisted",
			"action", event.Action,
			"tenant_id", event.TenantID,
			"error", err,
		)
		return
	}

	_, change := t.breaker.RecordSuccess()
	if change.Closed {
		t.metrics.setUnavailable(false)
	}
	t.metrics.observe(event.Action, ResultTracked)
}
