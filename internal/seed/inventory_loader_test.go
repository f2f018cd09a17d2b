package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hattucci/internal/inventory"
	"hattucci/internal/keylock"
	"hattucci/internal/testdb"
)

const sample = `producto,vencimiento,stock,precio_venta
Milk,2024-06-01,10,2.5
Bread,2024-03-20,20,0.4
Milk,2024-06-01,5,2.5
Eggs,someday,12,0.2
Butter,2024-08-01,many,3
Cheese,2024-09-01
`

func TestLoadInventory(t *testing.T) {
	db := testdb.Open(t)
	logger := zaptest.NewLogger(t)
	ledger := inventory.New(db.DB, keylock.Default(), logger)
	ctx := context.Background()

	stats, err := LoadInventory(ctx, ledger, strings.NewReader(sample), logger)
	require.NoError(t, err)
	assert.Equal(t, Stats{Created: 2, Updated: 1, Skipped: 3}, stats)

	lots, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	total, err := ledger.StockTotal(ctx, "Milk", "2024-06-01")
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
}

func TestLoadInventoryRowsWithoutEffectAreSkipped(t *testing.T) {
	db := testdb.Open(t)
	logger := zaptest.NewLogger(t)
	ledger := inventory.New(db.DB, keylock.Default(), logger)
	ctx := context.Background()

	const rows = `producto,vencimiento,stock,precio_venta
Milk,2024-06-01,0,2.5
Bread,2024-03-20,-4,0.4
`
	stats, err := LoadInventory(ctx, ledger, strings.NewReader(rows), logger)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 2}, stats)

	lots, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestLoadInventoryFileMissing(t *testing.T) {
	db := testdb.Open(t)
	logger := zaptest.NewLogger(t)
	ledger := inventory.New(db.DB, keylock.Default(), logger)

	_, err := LoadInventoryFile(context.Background(), ledger, "does-not-exist.csv", logger)
	assert.Error(t, err)
}
