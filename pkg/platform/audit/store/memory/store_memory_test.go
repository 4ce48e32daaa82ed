package memory

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "bukuinduk/pkg/domain"
	audit "bukuinduk/pkg/platform/audit"
)

func event(tenantID id.TenantID, n int) audit.Event {
	return audit.Event{TenantID: tenantID, Action: audit.ActionRegistryGenerated, Subject: strconv.Itoa(n)}
}

func subjects(events []audit.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Subject
	}
	return out
}

func TestAppendStaysWithinCapacity(t *testing.T) {
	ctx := context.Background()
	tenantID := id.TenantID(uuid.New())
	s := NewInMemoryStore(WithCapacity(3))

	for n := 1; n <= 5; n++ {
		require.NoError(t, s.Append(ctx, event(tenantID, n)))
	}

	events, err := s.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4", "5"}, subjects(events), "oldest evicted first")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Evicted())
}

func TestListByTenantFilters(t *testing.T) {
	ctx := context.Background()
	a, b := id.TenantID(uuid.New()), id.TenantID(uuid.New())
	s := NewInMemoryStore()

	require.NoError(t, s.Append(ctx, event(a, 1)))
	require.NoError(t, s.Append(ctx, event(b, 2)))
	require.NoError(t, s.Append(ctx, event(a, 3)))

	events, err := s.ListByTenant(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, subjects(events))
	assert.Equal(t, 3, s.Len())
	assert.Zero(t, s.Evicted())

	none, err := s.ListByTenant(ctx, id.TenantID(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDefaultCapacity(t *testing.T) {
	ctx := context.Background()
	tenantID := id.TenantID(uuid.New())
	s := NewInMemoryStore(WithCapacity(0))

	for n := range DefaultCapacity + 10 {
		require.NoError(t, s.Append(ctx, event(tenantID, n)))
	}
	assert.Equal(t, DefaultCapacity, s.Len())
	assert.Equal(t, 10, s.Evicted())
}
