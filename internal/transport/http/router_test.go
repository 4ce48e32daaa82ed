package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bukuinduk/internal/platform/metrics"
	"bukuinduk/pkg/platform/middleware/request"
	"bukuinduk/pkg/requestcontext"
	"bukuinduk/pkg/testutil"
)

type probe struct {
	requestID string
	hasTime   bool
}

func (p *probe) Register(r chi.Router) {
	r.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		p.requestID = requestcontext.RequestID(r.Context())
		_, p.hasTime = r.Context().Value(requestcontext.ContextKeyRequestTime).(time.Time)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
}

func newRouter(health map[string]HealthCheck, features ...RouteRegistrar) http.Handler {
	return NewRouter(Dependencies{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  metrics.NewRegistry(),
		Health:   health,
		Features: features,
	})
}

func TestRouterMiddleware(t *testing.T) {
	p := &probe{}
	router := newRouter(nil, p)

	rr := testutil.DoRequest(router, testutil.NewTenantRequest(t, http.MethodGet, "/probe", ""))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, p.requestID)
	assert.Equal(t, p.requestID, rr.Header().Get(request.HeaderRequestID))
	assert.True(t, p.hasTime)

	t.Run("inbound request id is kept", func(t *testing.T) {
		req := testutil.NewTenantRequest(t, http.MethodGet, "/probe", "")
		req.Header.Set(request.HeaderRequestID, "req-42")
		testutil.DoRequest(router, req)
		assert.Equal(t, "req-42", p.requestID)
	})

	t.Run("panics become 500", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewTenantRequest(t, http.MethodGet, "/panic", ""))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := newRouter(map[string]HealthCheck{"database": func(context.Context) error { return nil }})
		rr := testutil.DoRequest(router, testutil.NewTenantRequest(t, http.MethodGet, "/health", ""))
		require.Equal(t, http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Checks["database"])
	})

	t.Run("failing dependency", func(t *testing.T) {
		router := newRouter(map[string]HealthCheck{"redis": func(context.Context) error { return errors.New("connection refused") }})
		rr := testutil.DoRequest(router, testutil.NewTenantRequest(t, http.MethodGet, "/health", ""))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		body := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "connection refused", body.Checks["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rr := testutil.DoRequest(newRouter(nil), testutil.NewTenantRequest(t, http.MethodGet, "/metrics", ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
