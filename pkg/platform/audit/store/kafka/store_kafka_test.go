package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "bukuinduk/pkg/domain"
	audit "bukuinduk/pkg/platform/audit"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestStore_Append(t *testing.T) {
	producer := &fakeProducer{}
	store := New(producer, "registry-audit")
	tenantID := id.TenantID(uuid.New())

	err := store.Append(context.Background(), audit.Event{
		Timestamp: time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC),
		TenantID:  tenantID,
		Subject:   "student-1",
		Action:    audit.ActionRegistryGenerated,
	})
	require.NoError(t, err)
	require.Len(t, producer.records, 1)

	record := producer.records[0]
	assert.Equal(t, "registry-audit", record.Topic)
	assert.Equal(t, tenantID.String(), string(record.Key))
	assert.Equal(t, "registry_generated", string(record.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, "student-1", decoded["subject"])
}

func TestStore_AppendPropagatesProduceError(t *testing.T) {
	store := New(&fakeProducer{err: errors.New("broker down")}, "registry-audit")

	err := store.Append(context.Background(), audit.Event{Action: audit.ActionRegistryGenerated})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
