package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattucci/internal/migrations"
	"hattucci/internal/testdb"
)

func TestRunCreatesTablesAndIsIdempotent(t *testing.T) {
	db := testdb.Open(t)

	require.NoError(t, migrations.Run(context.Background(), db))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{"boletas_correlativo", "compras", "inventario", "registro", "ventas"}, tables)
}
