// Package storage owns the database handle of the service. It detects
// the target dialect from the configured connection string, opens and
// tunes the connection pool, creates the schema, and exposes a small
// set of context-aware execution primitives with unified error mapping.
//
// Every call executes as a single auto-committed statement. Stale
// server connections are handled by the pool: connections are recycled
// after ConnMaxLifetime and database/sql transparently retries a
// statement on driver.ErrBadConn with a fresh connection.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Storage wraps a *sql.DB handle for the configured dialect. It is safe
// for concurrent use and is meant to be injected into repositories
// rather than held as a package-level singleton.
type Storage struct {
	db      *sql.DB
	dialect Dialect
}

// New opens the store described by connString and verifies connectivity.
// The caller is responsible for Close on shutdown.
func New(connString string) (*Storage, error) {
	const op = "storage.New"

	dialect, driverName, dsn := DetectDialect(connString)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w: %v", op, ErrConnectionFailed, err)
	}

	return &Storage{db: db, dialect: dialect}, nil
}

// Dialect returns the detected dialect.
func (s *Storage) Dialect() Dialect { return s.dialect }

// Close closes all pooled connections.
func (s *Storage) Close() error { return s.db.Close() }

// InitSchema creates the users table if it does not exist yet, using the
// DDL variant of the active dialect. Safe to call on every start.
func (s *Storage) InitSchema(ctx context.Context) error {
	const op = "storage.InitSchema"

	if _, err := s.db.ExecContext(ctx, s.dialect.CreateUsersTable()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Exec runs a statement that returns no rows and reports the number of
// affected rows. Errors are translated through the error mapper.
func (s *Storage) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return affected, nil
}

// Query runs a statement that returns rows. The caller must close the
// result.
func (s *Storage) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

// QueryRow runs a statement expected to return at most one row.
// Scan on the result reports ErrNotFound when no row matched.
func (s *Storage) QueryRow(ctx context.Context, query string, args ...any) *Row {
	return &Row{raw: s.db.QueryRowContext(ctx, query, args...)}
}

// Row wraps *sql.Row so that Scan errors pass through the error mapper.
type Row struct {
	raw *sql.Row
}

// Scan copies the matched row into dest values.
func (r *Row) Scan(dest ...any) error {
	return mapError(r.raw.Scan(dest...))
}
