// Package handler exposes registry generation over HTTP.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"bukuinduk/internal/blob"
	"bukuinduk/internal/registry/aggregator"
	"bukuinduk/internal/registry/models"
	"bukuinduk/internal/registry/service"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/httputil"
	"bukuinduk/pkg/platform/middleware/tenant"
	pstrings "bukuinduk/pkg/platform/strings"
	"bukuinduk/pkg/requestcontext"
)

const (
	HeaderSections = "X-Registry-Sections"
	HeaderDegraded = "X-Registry-Degraded"
	HeaderPages    = "X-Registry-Pages"
	HeaderDocument = "X-Registry-Document-ID"
)

// Service is the registry use-case surface the handler needs.
type Service interface {
	GenerateRegistry(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts service.GenerateOptions) (*service.Document, error)
	Summary(ctx context.Context, studentID id.StudentID, tenantID id.TenantID, opts aggregator.Options) (*models.RegistryRecord, error)
	PagesFor(ctx context.Context, rec *models.RegistryRecord, includeSignature bool) (int, error)
	ListArchives(ctx context.Context, studentID id.StudentID, tenantID id.TenantID) ([]blob.Info, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: svc}
}

// Register mounts the tenant-scoped registry routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/registry/students/{studentID}", func(r chi.Router) {
		r.Use(tenant.RequireTenant(h.logger))
		r.Get("/document", h.handleDocument)
		r.Get("/summary", h.handleSummary)
		r.Get("/archives", h.handleArchives)
	})
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID, opts, err := parseRequest(r)
	if err != nil {
		h.fail(ctx, w, "invalid registry document request", err)
		return
	}

	doc, err := h.service.GenerateRegistry(ctx, studentID, requestcontext.TenantID(ctx), opts)
	if err != nil {
		h.fail(ctx, w, "failed to generate registry document", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.Header().Set(HeaderSections, fmt.Sprintf("%d/%d", doc.SectionsLoaded, doc.SectionsTotal))
	w.Header().Set(HeaderPages, strconv.Itoa(doc.Pages))
	w.Header().Set(HeaderDocument, doc.ID.String())
	if len(doc.DegradedDomains) > 0 {
		w.Header().Set(HeaderDegraded, joinDomains(doc.DegradedDomains))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		h.logger.WarnContext(ctx, "failed to write registry document",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

type sectionSummary struct {
	Domain   models.Domain `json:"domain"`
	Label    string        `json:"label"`
	Total    int           `json:"total"`
	Degraded bool          `json:"degraded"`
	Error    string        `json:"error,omitempty"`
	Stats    models.Stats  `json:"stats"`
}

type summaryResponse struct {
	StudentID      id.StudentID     `json:"student_id"`
	FullName       string           `json:"full_name"`
	NISN           string           `json:"nisn"`
	AcademicYear   string           `json:"academic_year,omitempty"`
	GeneratedAt    time.Time        `json:"generated_at"`
	GlobalStats    models.Stats     `json:"global_stats"`
	Sections       []sectionSummary `json:"sections"`
	EstimatedPages *int             `json:"estimated_pages,omitempty"`
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID, opts, err := parseRequest(r)
	if err != nil {
		h.fail(ctx, w, "invalid registry summary request", err)
		return
	}
	estimate, err := parseBool(r, "estimate_pages")
	if err != nil {
		h.fail(ctx, w, "invalid registry summary request", err)
		return
	}
	tenantID := requestcontext.TenantID(ctx)

	rec, err := h.service.Summary(ctx, studentID, tenantID, aggregator.Options{
		AcademicYear: opts.AcademicYear,
		Categories:   opts.Categories,
	})
	if err != nil {
		h.fail(ctx, w, "failed to summarize registry", err)
		return
	}

	resp := summaryResponse{
		StudentID:    rec.Identity.StudentID,
		FullName:     rec.Identity.FullName,
		NISN:         rec.Identity.NISN,
		AcademicYear: rec.AcademicYear,
		GeneratedAt:  rec.GeneratedAt,
		GlobalStats:  rec.GlobalStats,
		Sections:     make([]sectionSummary, 0, len(rec.Domains)),
	}
	for _, d := range rec.Domains {
		s := rec.Section(d)
		if s == nil {
			continue
		}
		resp.Sections = append(resp.Sections, sectionSummary{
			Domain:   d,
			Label:    d.Label(),
			Total:    s.Total,
			Degraded: s.Degraded,
			Error:    s.Error,
			Stats:    s.Stats,
		})
	}
	if estimate {
		pages, err := h.service.PagesFor(ctx, rec, opts.IncludeSignature)
		if err != nil {
			h.fail(ctx, w, "failed to estimate registry pages", err)
			return
		}
		resp.EstimatedPages = &pages
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type archivesResponse struct {
	Archives []blob.Info `json:"archives"`
}

func (h *Handler) handleArchives(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID, err := id.ParseStudentID(chi.URLParam(r, "studentID"))
	if err != nil {
		h.fail(ctx, w, "invalid registry archive request", err)
		return
	}
	infos, err := h.service.ListArchives(ctx, studentID, requestcontext.TenantID(ctx))
	if err != nil {
		h.fail(ctx, w, "failed to list registry archives", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, archivesResponse{Archives: infos})
}

// parseRequest reads the student path parameter and the shared query
// options. Category names are validated by the aggregator.
func parseRequest(r *http.Request) (id.StudentID, service.GenerateOptions, error) {
	var opts service.GenerateOptions
	studentID, err := id.ParseStudentID(chi.URLParam(r, "studentID"))
	if err != nil {
		return studentID, opts, err
	}
	q := r.URL.Query()
	opts.AcademicYear = strings.TrimSpace(q.Get("academic_year"))
	if raw := q.Get("categories"); raw != "" {
		opts.Categories = pstrings.SplitCSV(raw)
	}
	if opts.IncludeSignature, err = parseBool(r, "include_signature"); err != nil {
		return studentID, opts, err
	}
	if raw := strings.TrimSpace(q.Get("signature_id")); raw != "" {
		if opts.SignatureID, err = id.ParseSignatureID(raw); err != nil {
			return studentID, opts, err
		}
	}
	return studentID, opts, nil
}

func parseBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.New(dErrors.CodeInvalidArgument, key+" must be a boolean")
	}
	return b, nil
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", requestcontext.TenantID(ctx).String(),
		"error", err,
	}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func joinDomains(ds []models.Domain) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}
