package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Registry.FetchConcurrency)
	assert.Equal(t, 5*time.Second, cfg.Registry.FetchTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Registry.CacheTTL)
	assert.Equal(t, "none", cfg.Blob.Driver)
	assert.Empty(t, cfg.Audit.KafkaBrokers)
	assert.Equal(t, 1000, cfg.Audit.MemoryCapacity)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BUKUINDUK_ADDR", ":9090")
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("DATABASE_MIGRATE", "true")
	t.Setenv("REGISTRY_FETCH_CONCURRENCY", "8")
	t.Setenv("REGISTRY_FETCH_TIMEOUT", "750ms")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("BLOB_S3_PATH_STYLE", "true")
	t.Setenv("AUDIT_MEMORY_CAPACITY", "50")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, 8, cfg.Registry.FetchConcurrency)
	assert.Equal(t, 750*time.Millisecond, cfg.Registry.FetchTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Audit.KafkaBrokers)
	assert.True(t, cfg.Blob.S3UsePathStyle)
	assert.Equal(t, 50, cfg.Audit.MemoryCapacity)
}

func TestFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("REGISTRY_FETCH_CONCURRENCY", "-3")
	t.Setenv("REGISTRY_CACHE_TTL", "soon")

	cfg := FromEnv()

	assert.Equal(t, 4, cfg.Registry.FetchConcurrency)
	assert.Equal(t, 2*time.Minute, cfg.Registry.CacheTTL)
}
