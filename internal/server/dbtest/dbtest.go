// Package dbtest opens throwaway, fully migrated databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// NewSQLite returns a private in-memory SQLite database with the schema
// applied. It is closed when the test ends.
func NewSQLite(t testing.TB) *bun.DB {
	t.Helper()

	db, err := dbx.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db.DB, dbx.DriverSQLite))
	return db
}
