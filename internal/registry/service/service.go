// Package service is the public entry point for Buku Induk generation. It
// aggregates a student's history, resolves the signature, renders the
// document and records the outcome.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bukuinduk/internal/blob"
	"bukuinduk/internal/registry/aggregator"
	"bukuinduk/internal/registry/composer"
	"bukuinduk/internal/registry/models"
	"bukuinduk/internal/registry/signature"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/audit"
	"bukuinduk/pkg/requestcontext"
)

var tracer = otel.Tracer("bukuinduk/internal/registry/service")

type Aggregator interface {
	Aggregate(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts aggregator.Options) (*models.RegistryRecord, error)
}

type Composer interface {
	Compose(ctx context.Context, rec *models.RegistryRecord, opts composer.Options) (*composer.Result, error)
	CountPages(ctx context.Context, rec *models.RegistryRecord, opts composer.Options) (int, error)
}

type SignatureLoader interface {
	Load(ctx context.Context, tenantID id.TenantID, signatureID id.SignatureID) (*signature.Resolved, error)
}

type AuditTracker interface {
	Track(ctx context.Context, event audit.Event)
}

// ArchiveStore keeps generated documents.
type ArchiveStore interface {
	Put(ctx context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Info, error)
	List(ctx context.Context, prefix string) ([]blob.Info, error)
}

// GenerateOptions narrows and decorates one document. A nil SignatureID with
// IncludeSignature set renders the placeholder.
type GenerateOptions struct {
	AcademicYear     string
	Categories       []string
	IncludeSignature bool
	SignatureID      id.SignatureID
}

func (o GenerateOptions) aggregate() aggregator.Options {
	return aggregator.Options{AcademicYear: o.AcademicYear, Categories: o.Categories}
}

// Document is a rendered Buku Induk.
type Document struct {
	ID              id.DocumentID
	Content         []byte
	FileName        string
	Pages           int
	SectionsTotal   int
	SectionsLoaded  int
	DegradedDomains []models.Domain
	ArchiveKey      string
	GeneratedAt     time.Time
}

// Service wires aggregation, signature loading and rendering together. It is
// safe for concurrent use; each call renders its own document.
type Service struct {
	aggregator       Aggregator
	composer         Composer
	signatures       SignatureLoader
	archive          ArchiveStore
	tracker          AuditTracker
	logger           *slog.Logger
	metrics          *Metrics
	aggregateTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithSignatureLoader(l SignatureLoader) Option {
	return func(s *Service) {
		s.signatures = l
	}
}

// WithArchive stores every generated document under registry/<tenant>/<student>/.
func WithArchive(a ArchiveStore) Option {
	return func(s *Service) {
		s.archive = a
	}
}

func WithAuditTracker(t AuditTracker) Option {
	return func(s *Service) {
		s.tracker = t
	}
}

// WithAggregateTimeout bounds the whole aggregation step.
func WithAggregateTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.aggregateTimeout = d
		}
	}
}

func New(agg Aggregator, comp Composer, opts ...Option) *Service {
	s := &Service{
		aggregator:       agg,
		composer:         comp,
		logger:           slog.Default(),
		aggregateTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRegistry renders the Buku Induk of one student.
func (s *Service) GenerateRegistry(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts GenerateOptions) (*Document, error) {
	ctx, span := tracer.Start(ctx, "registry.generate", trace.WithAttributes(
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("student_id", studentID.String()),
		attribute.Bool("include_signature", opts.IncludeSignature),
	))
	defer span.End()

	doc, err := s.generate(ctx, studentID, tenantID, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.IncDocument(outcomeOf(err))
		s.track(ctx, audit.ActionRegistryGenerated, tenantID, studentID, string(dErrors.CodeOf(err)), nil)
		return nil, err
	}

	outcome := OutcomeComplete
	if len(doc.DegradedDomains) > 0 {
		outcome = OutcomePartial
	}
	s.metrics.IncDocument(outcome)
	s.metrics.ObservePages(doc.Pages)
	span.SetAttributes(attribute.Int("pages", doc.Pages), attribute.Int("sections_loaded", doc.SectionsLoaded))
	s.track(ctx, audit.ActionRegistryGenerated, tenantID, studentID, outcome, map[string]string{
		"document_id":      doc.ID.String(),
		"pages":            strconv.Itoa(doc.Pages),
		"sections":         fmt.Sprintf("%d/%d", doc.SectionsLoaded, doc.SectionsTotal),
		"degraded_domains": joinDomains(doc.DegradedDomains),
		"archive_key":      doc.ArchiveKey,
	})
	return doc, nil
}

func (s *Service) generate(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts GenerateOptions) (*Document, error) {
	rec, err := s.aggregate(ctx, studentID, tenantID, opts.aggregate())
	if err != nil {
		return nil, err
	}

	compOpts := composer.Options{IncludeSignature: opts.IncludeSignature}
	if opts.IncludeSignature {
		compOpts.Signature = s.loadSignature(ctx, tenantID, opts.SignatureID)
	}

	start := time.Now()
	res, err := s.composer.Compose(ctx, rec, compOpts)
	s.metrics.ObserveComposeLatency(time.Since(start))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeCancelled) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render registry document")
	}

	doc := &Document{
		ID:              id.NewDocumentID(),
		Content:         res.Content,
		FileName:        FileName(rec),
		Pages:           res.Pages,
		SectionsTotal:   len(rec.Domains),
		SectionsLoaded:  rec.LoadedCount(),
		DegradedDomains: rec.DegradedDomains(),
		GeneratedAt:     rec.GeneratedAt,
	}
	doc.ArchiveKey = s.store(ctx, rec, doc)
	return doc, nil
}

// Summary returns the aggregated record without rendering it.
func (s *Service) Summary(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts aggregator.Options) (*models.RegistryRecord, error) {
	rec, err := s.aggregate(ctx, studentID, tenantID, opts)
	if err != nil {
		return nil, err
	}
	s.track(ctx, audit.ActionRegistrySummarized, tenantID, studentID, OutcomeComplete, map[string]string{
		"sections": fmt.Sprintf("%d/%d", rec.LoadedCount(), len(rec.Domains)),
	})
	return rec, nil
}

// EstimatePages lays the document out without producing PDF bytes.
func (s *Service) EstimatePages(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts GenerateOptions) (int, error) {
	rec, err := s.aggregate(ctx, studentID, tenantID, opts.aggregate())
	if err != nil {
		return 0, err
	}
	return s.PagesFor(ctx, rec, opts.IncludeSignature)
}

// PagesFor lays out an already aggregated record, so a summary and its page
// estimate describe the same snapshot.
func (s *Service) PagesFor(ctx context.Context, rec *models.RegistryRecord, includeSignature bool) (int, error) {
	pages, err := s.composer.CountPages(ctx, rec, composer.Options{IncludeSignature: includeSignature})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeCancelled) {
			return 0, err
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lay out registry document")
	}
	return pages, nil
}

// ListArchives returns the stored documents of a student, oldest first.
// Without an archive store the list is empty.
func (s *Service) ListArchives(ctx context.Context, studentID id.StudentID, tenantID id.TenantID) ([]blob.Info, error) {
	if s.archive == nil {
		return []blob.Info{}, nil
	}
	infos, err := s.archive.List(ctx, archivePrefix(tenantID, studentID))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list archived documents")
	}
	if infos == nil {
		infos = []blob.Info{}
	}
	return infos, nil
}

func (s *Service) aggregate(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts aggregator.Options) (*models.RegistryRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.aggregateTimeout)
	defer cancel()
	return s.aggregator.Aggregate(ctx, studentID, tenantID, opts)
}

// loadSignature never fails the document: any problem falls back to the
// placeholder.
func (s *Service) loadSignature(ctx context.Context, tenantID id.TenantID, signatureID id.SignatureID) *signature.Resolved {
	if s.signatures == nil || signatureID.IsNil() {
		return nil
	}
	resolved, err := s.signatures.Load(ctx, tenantID, signatureID)
	if err != nil {
		s.logger.WarnContext(ctx, "signature unavailable, rendering placeholder",
			"tenant_id", tenantID.String(),
			"signature_id", signatureID.String(),
			"error", err,
		)
		return nil
	}
	return resolved
}

// store archives the document and returns its key, or "" when archiving is
// off or failed.
func (s *Service) store(ctx context.Context, rec *models.RegistryRecord, doc *Document) string {
	if s.archive == nil {
		return ""
	}
	key := archiveKey(rec.Identity.TenantID, rec.Identity.StudentID, rec.GeneratedAt)
	_, err := s.archive.Put(ctx, key, bytes.NewReader(doc.Content), blob.PutOptions{
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"document_id": doc.ID.String(),
			"file_name":   doc.FileName,
			"pages":       strconv.Itoa(doc.Pages),
			"sections":    fmt.Sprintf("%d/%d", doc.SectionsLoaded, doc.SectionsTotal),
		},
	})
	if err != nil {
		s.metrics.IncArchiveFailure()
		s.logger.ErrorContext(ctx, "failed to archive registry document",
			"tenant_id", rec.Identity.TenantID.String(),
			"student_id", rec.Identity.StudentID.String(),
			"key", key,
			"error", err,
		)
		return ""
	}
	return key
}

func (s *Service) track(ctx context.Context, action audit.Action, tenantID id.TenantID, studentID id.StudentID, outcome string, details map[string]string) {
	if s.tracker == nil {
		return
	}
	s.tracker.Track(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		TenantID:  tenantID,
		Subject:   studentID.String(),
		Action:    action,
		RequestID: requestcontext.RequestID(ctx),
		Outcome:   outcome,
		Details:   details,
	})
}

func archivePrefix(tenantID id.TenantID, studentID id.StudentID) string {
	return fmt.Sprintf("registry/%s/%s/", tenantID, studentID)
}

func archiveKey(tenantID id.TenantID, studentID id.StudentID, at time.Time) string {
	return archivePrefix(tenantID, studentID) + at.UTC().Format("20060102T150405.000Z") + ".pdf"
}

// FileName is the download name of a rendered document, keyed by NISN when
// the student has one.
func FileName(rec *models.RegistryRecord) string {
	key := strings.TrimSpace(rec.Identity.NISN)
	if key == "" {
		key = rec.Identity.StudentID.String()
	}
	return fmt.Sprintf("buku-induk-%s-%s.pdf", key, rec.GeneratedAt.UTC().Format("20060102"))
}

func joinDomains(ds []models.Domain) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}
