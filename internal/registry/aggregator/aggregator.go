// Package aggregator assembles a student's RegistryRecord by fetching every
// requested domain concurrently. A failing domain degrades its own section
// and never fails the aggregation.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"bukuinduk/internal/platform/database"
	"bukuinduk/internal/registry/models"
	"bukuinduk/internal/registry/stats"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/circuit"
	"bukuinduk/pkg/platform/sentinel"
	"bukuinduk/pkg/requestcontext"
)

var tracer = otel.Tracer("bukuinduk/internal/registry/aggregator")

// RecordStore is the read side of the domain stores.
type RecordStore interface {
	FindStudent(ctx context.Context, studentID id.StudentID, tenantID id.TenantID) (*models.StudentIdentity, error)
	Fetch(ctx context.Context, domain models.Domain, key models.FetchKey) ([]models.Record, error)
}

// Failure categories recorded for degraded sections.
const (
	CategoryCircuitOpen = "circuit_open"
	CategoryCancelled   = "cancelled"
)

type Aggregator struct {
	store       RecordStore
	cache       SectionCache
	logger      *slog.Logger
	metrics     *Metrics
	concurrency int
	timeout     time.Duration
	breakers    map[models.Domain]*circuit.Breaker
}

type Option func(*Aggregator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// WithCache enables the section cache.
func WithCache(c SectionCache) Option {
	return func(a *Aggregator) {
		a.cache = c
	}
}

// WithConcurrency bounds how many domain fetches run at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithFetchTimeout bounds each domain fetch independently.
func WithFetchTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithBreaker configures the per-domain circuit breakers. They count
// timeouts and unavailable stores only.
func WithBreaker(threshold int, cooldown time.Duration) Option {
	return func(a *Aggregator) {
		for _, d := range models.AllDomains {
			a.breakers[d] = circuit.New(string(d),
				circuit.WithFailureThreshold(threshold),
				circuit.WithCooldown(cooldown))
		}
	}
}

func New(store RecordStore, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:       store,
		logger:      slog.Default(),
		concurrency: 4,
		timeout:     5 * time.Second,
		breakers:    make(map[models.Domain]*circuit.Breaker, len(models.AllDomains)),
	}
	WithBreaker(5, 30*time.Second)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate builds the registry record for one student. It returns
// CodeInvalidArgument for unknown categories, CodeNotFound when the student
// does not exist in the tenant and CodeCancelled when ctx ends first.
func (a *Aggregator) Aggregate(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts Options) (*models.RegistryRecord, error) {
	ctx, span := tracer.Start(ctx, "registry.aggregate", trace.WithAttributes(
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("student_id", studentID.String()),
	))
	defer span.End()
	start := time.Now()

	record, err := a.aggregate(ctx, studentID, tenantID, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	a.metrics.ObserveAggregateLatency(time.Since(start))
	span.SetAttributes(
		attribute.Int("sections_total", len(record.Domains)),
		attribute.Int("sections_degraded", len(record.DegradedDomains())),
	)
	return record, nil
}

func (a *Aggregator) aggregate(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts Options) (*models.RegistryRecord, error) {
	domains, err := NormalizeCategories(opts.Categories)
	if err != nil {
		return nil, err
	}

	identity, err := a.store.FindStudent(ctx, studentID, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		case ctx.Err() != nil:
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeCancelled, "registry aggregation cancelled")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
		}
	}

	key := models.FetchKey{StudentID: studentID, TenantID: tenantID, AcademicYear: opts.AcademicYear}
	results := make([]*models.Section, len(domains))

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)
	for i, d := range domains {
		g.Go(func() error {
			results[i] = a.fetchSection(ctx, d, key)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCancelled, "registry aggregation cancelled")
	}

	sections := make(map[models.Domain]*models.Section, len(domains))
	for i, d := range domains {
		sections[d] = results[i]
	}
	return &models.RegistryRecord{
		Identity:     identity.Snapshot(),
		Sections:     sections,
		Domains:      domains,
		GeneratedAt:  requestcontext.Now(ctx).UTC(),
		AcademicYear: opts.AcademicYear,
		GlobalStats:  stats.Global(domains, sections),
	}, nil
}

// fetchSection never fails: errors become a degraded section.
func (a *Aggregator) fetchSection(ctx context.Context, d models.Domain, key models.FetchKey) *models.Section {
	if ctx.Err() != nil {
		return a.degrade(ctx, d, CategoryCancelled, ctx.Err(), false)
	}
	if records, ok := a.cached(ctx, d, key); ok {
		return newSection(d, records)
	}

	breaker := a.breakers[d]
	if !breaker.Allow() {
		return a.degrade(ctx, d, CategoryCircuitOpen, errors.New("circuit open"), false)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	start := time.Now()
	records, err := a.store.Fetch(fetchCtx, d, key)
	cancel()
	a.metrics.ObserveFetchLatency(d, time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return a.degrade(ctx, d, CategoryCancelled, err, false)
		}
		category := database.Classify(err)
		return a.degrade(ctx, d, category, err, storeWide(category))
	}
	if _, change := breaker.RecordSuccess(); change.Closed {
		a.metrics.SetBreakerState(d, false)
		a.logger.InfoContext(ctx, "domain circuit closed", "domain", d)
	}

	if records == nil {
		records = []models.Record{}
	}
	models.SortRecords(records)
	a.remember(ctx, d, key, records)
	return newSection(d, records)
}

// storeWide reports whether a failure says the domain store itself is
// unhealthy. Only these trip the breaker, which is shared by all tenants;
// query and data errors stay scoped to the requesting student.
func storeWide(category string) bool {
	return category == database.CategoryTimeout || category == database.CategoryUnavailable
}

func newSection(d models.Domain, records []models.Record) *models.Section {
	s := models.NewSection(d, records)
	s.Stats = stats.ForSection(d, s.Records)
	return s
}

func (a *Aggregator) degrade(ctx context.Context, d models.Domain, category string, cause error, countFailure bool) *models.Section {
	if countFailure {
		if _, change := a.breakers[d].RecordFailure(); change.Opened {
			a.metrics.SetBreakerState(d, true)
			a.logger.WarnContext(ctx, "domain circuit opened", "domain", d)
		}
	}
	err := dErrors.Wrap(cause, dErrors.CodeDomainFetchFailed, fmt.Sprintf("%s fetch failed", d))
	a.logger.WarnContext(ctx, "domain fetch failed",
		"domain", d,
		"category", category,
		"error", err,
	)
	a.metrics.IncFetchFailure(d, category)
	a.metrics.IncDegraded(d)

	s := models.DegradedSection(d, category+": "+cause.Error())
	s.Stats = stats.ForSection(d, nil)
	return s
}

func (a *Aggregator) cached(ctx context.Context, d models.Domain, key models.FetchKey) ([]models.Record, bool) {
	if a.cache == nil {
		return nil, false
	}
	records, ok, err := a.cache.Get(ctx, d, key)
	switch {
	case err != nil:
		a.metrics.IncCache("error")
		a.logger.WarnContext(ctx, "section cache read failed", "domain", d, "error", err)
		return nil, false
	case !ok:
		a.metrics.IncCache("miss")
		return nil, false
	}
	a.metrics.IncCache("hit")
	return records, true
}

func (a *Aggregator) remember(ctx context.Context, d models.Domain, key models.FetchKey, records []models.Record) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, d, key, records); err != nil {
		a.logger.WarnContext(ctx, "section cache write failed", "domain", d, "error", err)
	}
}
