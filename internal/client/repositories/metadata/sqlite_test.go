package metadata

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/achievo/internal/client/migrations"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func fixedClock(r *SQLiteRepository, t time.Time) {
	r.now = func() time.Time { return t }
}

func TestSetAndGet_StampsUpdatedAt(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	fixedClock(r, at)

	require.NoError(t, r.Set(ctx, "access_token", []byte("tok-1")))

	e, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "access_token", e.Key)
	assert.Equal(t, []byte("tok-1"), e.Value)
	assert.True(t, at.Equal(e.UpdatedAt), "got %v", e.UpdatedAt)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	e, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestSet_UpsertOverwritesValueAndTime(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	fixedClock(r, first)
	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	fixedClock(r, first.Add(time.Hour))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	e, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), e.Value)
	assert.True(t, first.Add(time.Hour).Equal(e.UpdatedAt))
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	e, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, e)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRepository_WorksInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(tx).Set(ctx, "k", []byte("v")))
	require.NoError(t, tx.Rollback())

	e, err := NewSQLiteRepository(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestParseUpdatedAt(t *testing.T) {
	assert.Equal(t, time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC), parseUpdatedAt("2025-02-03 04:05:06"))
	assert.Equal(t, time.Date(2025, 2, 3, 4, 5, 6, 7, time.UTC), parseUpdatedAt("2025-02-03T04:05:06.000000007Z"))
	assert.True(t, parseUpdatedAt("yesterday").IsZero())
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata[k]")
}
