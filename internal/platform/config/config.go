package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once in main.
type Config struct {
	Server   Server
	Database DatabaseConfig
	Redis    RedisConfig
	Registry RegistryConfig
	Blob     BlobConfig
	Audit    AuditConfig
	Log      LogConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the SQL driver for the domain stores.
// Driver is one of pgx, postgres (lib/pq) or sqlite.
type DatabaseConfig struct {
	Driver       string
	URL          string
	Migrate      bool
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the optional section cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RegistryConfig tunes aggregation and rendering.
type RegistryConfig struct {
	FetchConcurrency int
	FetchTimeout     time.Duration
	AggregateTimeout time.Duration
	CacheTTL         time.Duration
	BreakerThreshold int
	BreakerCooldown  time.Duration
	SchoolName       string
	ArchiveDocuments bool
}

// BlobConfig selects where archived documents and signature files live.
// Driver is one of none, memory, fs or s3.
type BlobConfig struct {
	Driver         string
	FSRoot         string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3Prefix       string
	S3UsePathStyle bool
}

// AuditConfig configures the audit sink. No brokers means a bounded
// in-memory ring of MemoryCapacity events.
type AuditConfig struct {
	KafkaBrokers   []string
	Topic          string
	SampleRate     float64
	MemoryCapacity int
}

type LogConfig struct {
	Level  string
	Format string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("BUKUINDUK_ADDR", ":8080"),
			ShutdownTimeout: envDuration("BUKUINDUK_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:       envString("DATABASE_DRIVER", "sqlite"),
			URL:          envString("DATABASE_URL", "file:bukuinduk.db?_pragma=busy_timeout(5000)"),
			Migrate:      envBool("DATABASE_MIGRATE", false),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Registry: RegistryConfig{
			FetchConcurrency: envInt("REGISTRY_FETCH_CONCURRENCY", 4),
			FetchTimeout:     envDuration("REGISTRY_FETCH_TIMEOUT", 5*time.Second),
			AggregateTimeout: envDuration("REGISTRY_AGGREGATE_TIMEOUT", 30*time.Second),
			CacheTTL:         envDuration("REGISTRY_CACHE_TTL", 2*time.Minute),
			BreakerThreshold: envInt("REGISTRY_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  envDuration("REGISTRY_BREAKER_COOLDOWN", 30*time.Second),
			SchoolName:       envString("REGISTRY_SCHOOL_NAME", "Sekolah"),
			ArchiveDocuments: envBool("REGISTRY_ARCHIVE_DOCUMENTS", false),
		},
		Blob: BlobConfig{
			Driver:         envString("BLOB_DRIVER", "none"),
			FSRoot:         envString("BLOB_FS_ROOT", "./data/blobs"),
			S3Bucket:       os.Getenv("BLOB_S3_BUCKET"),
			S3Region:       envString("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:     os.Getenv("BLOB_S3_ENDPOINT"),
			S3Prefix:       os.Getenv("BLOB_S3_PREFIX"),
			S3UsePathStyle: envBool("BLOB_S3_PATH_STYLE", false),
		},
		Audit: AuditConfig{
			KafkaBrokers:   envList("KAFKA_BROKERS"),
			Topic:          envString("AUDIT_TOPIC", "bukuinduk.audit"),
			SampleRate:     envFloat("AUDIT_SAMPLE_RATE", 1),
			MemoryCapacity: envInt("AUDIT_MEMORY_CAPACITY", 1000),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f >= 0 {
		return f
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return def
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
