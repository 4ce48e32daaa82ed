// Package database opens the SQL pool behind the registry stores and
// describes the dialect differences they care about.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"bukuinduk/internal/platform/config"
)

// Dialect captures placeholder syntax.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open opens and pings a pool for cfg.Driver (pgx, postgres or sqlite).
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, 0, err
	}
	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if dialect == SQLite {
		// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY in dev.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, 0, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, dialect, nil
}

// Failure categories reported by Classify.
const (
	CategoryTimeout     = "timeout"
	CategoryCancelled   = "cancelled"
	CategoryUnavailable = "unavailable"
	CategoryQuery       = "store_error"
)

// Classify buckets a driver error for metrics and logs. It understands
// pgx and lib/pq server errors as well as context errors.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case errors.Is(err, context.Canceled):
		return CategoryCancelled
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code))
	}
	if errors.Is(err, sql.ErrConnDone) {
		return CategoryUnavailable
	}
	return CategoryQuery
}

func classifySQLState(code string) string {
	switch {
	case code == "57014":
		return CategoryTimeout
	case len(code) >= 2 && (code[:2] == "08" || code[:2] == "53" || code[:2] == "57"):
		return CategoryUnavailable
	default:
		return CategoryQuery
	}
}
