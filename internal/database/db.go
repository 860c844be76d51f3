package database

import (
	"context"
	"database/sql"
)

// DB narrows the pgx pool to what the repositories actually use, so tests
// can stand in a fake without touching Postgres.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	// Exec returns the number of rows affected, which repositories use to
	// turn a zero-row update into a not-found error.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes a database/sql bridge for callers that need one, like
	// the migration runner.
	SQLDB() *sql.DB
}

type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
