package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func insert(ctx context.Context, q DBTX, v string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO t(v) VALUES (?)`, v)
	return err
}

func TestDBTX_SatisfiedByDBAndTx(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)

	require.NoError(t, insert(ctx, db, "direct"))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, insert(ctx, tx, "in-tx"))
	require.NoError(t, tx.Rollback())

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	require.Equal(t, 1, n)
}
