package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}

type rowScanner interface {
	Scan(...interface{}) error
}

// execer lo cumplen pgxpool.Pool y pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}
