package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "bukuinduk/pkg/domain"
	"bukuinduk/pkg/requestcontext"
)

// FixedTime is the request time used by deterministic tests.
var FixedTime = time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC)

// TenantContext returns a context carrying a fresh tenant ID and FixedTime.
func TenantContext() (context.Context, id.TenantID) {
	tenantID := id.TenantID(uuid.New())
	ctx := requestcontext.WithTenantID(context.Background(), tenantID)
	return requestcontext.WithTime(ctx, FixedTime), tenantID
}
