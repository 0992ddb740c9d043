// Package dbx provides the tiny database abstraction shared by repositories:
// DBTX is implemented by both *sql.DB and *sql.Tx, so a repository can run
// either standalone or inside a caller's transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
