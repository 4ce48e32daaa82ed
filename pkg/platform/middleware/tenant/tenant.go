// Package tenant resolves the tenant scoping a request from a trusted header.
package tenant

import (
	"log/slog"
	"net/http"

	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/httputil"
	"bukuinduk/pkg/requestcontext"
)

const HeaderTenantID = "X-Tenant-ID"

// RequireTenant rejects requests without a valid X-Tenant-ID with 401 and
// stores the parsed tenant in the request context otherwise.
func RequireTenant(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			raw := r.Header.Get(HeaderTenantID)
			if raw == "" {
				logger.WarnContext(ctx, "unauthorized access - missing tenant",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing tenant header"))
				return
			}

			tenantID, err := id.ParseTenantID(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid tenant",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid tenant header"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithTenantID(ctx, tenantID)))
		})
	}
}
