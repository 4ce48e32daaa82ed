//go:build integration

package containers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"bukuinduk/internal/platform/config"
	"bukuinduk/internal/platform/database"
)

// Postgres is a throwaway database opened through the platform database
// package, the same way the server opens DATABASE_URL.
type Postgres struct {
	DSN     string
	DB      *sql.DB
	Dialect database.Dialect
}

// NewPostgres starts postgres:16 and opens it with driver ("pgx" or
// "postgres"). Everything is torn down on test cleanup.
func NewPostgres(t *testing.T, driver string) *Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("bukuinduk"),
		tcpostgres.WithUsername("bukuinduk"),
		tcpostgres.WithPassword("bukuinduk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}
	db, dialect, err := database.Open(ctx, config.DatabaseConfig{Driver: driver, URL: dsn, MaxOpenConns: 4})
	if err != nil {
		t.Fatalf("open postgres via %s: %v", driver, err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &Postgres{DSN: dsn, DB: db, Dialect: dialect}
}
