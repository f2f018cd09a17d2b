// Package testdb opens throwaway migrated databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hattucci/internal/database"
	"hattucci/internal/migrations"
)

// Open returns a migrated in-memory SQLite database closed at test cleanup.
func Open(t testing.TB) *database.DB {
	t.Helper()
	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(context.Background(), db))
	return db
}
