package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hattucci/domain"
	"hattucci/internal/correlative"
	"hattucci/internal/inventory"
	"hattucci/internal/keylock"
	"hattucci/internal/testdb"
)

type fixture struct {
	sales     *Ledger
	inventory *inventory.Ledger
	issuer    *correlative.Issuer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testdb.Open(t)
	locks := keylock.Default()
	logger := zaptest.NewLogger(t)
	s := New(db.DB, locks, logger)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 18, 30, 0, 0, time.Local) }
	return fixture{
		sales:     s,
		inventory: inventory.New(db.DB, locks, logger),
		issuer:    correlative.NewIssuer(db.DB, locks, logger),
	}
}

func (f fixture) lot(t *testing.T, product string, stock int64) int64 {
	t.Helper()
	rec, err := f.inventory.Upsert(context.Background(), domain.LotKey{Product: product, SalePrice: 2, ExpiresOn: "2024-12-31"}, stock)
	require.NoError(t, err)
	return rec.LotID
}

func TestProcessBoletaIssuesOneNumberPerSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.lot(t, "Milk", 10)
	bread := f.lot(t, "Bread", 5)

	receipt, err := f.sales.Process(ctx, []domain.SaleLine{
		{InventoryID: milk, ProductName: "Milk", Quantity: 2, LineTotal: 4},
		{InventoryID: bread, ProductName: "Bread", Quantity: 1, LineTotal: 2},
	}, "BOLETA")
	require.NoError(t, err)
	require.NotNil(t, receipt.Number)
	assert.EqualValues(t, 1, *receipt.Number)
	assert.Equal(t, 2, receipt.Lines)

	second, err := f.sales.Process(ctx, []domain.SaleLine{{InventoryID: milk, ProductName: "Milk", Quantity: 1, LineTotal: 2}}, "BOLETA")
	require.NoError(t, err)
	require.NotNil(t, second.Number)
	assert.EqualValues(t, 2, *second.Number)

	rows, err := f.sales.ListByDay(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows[:2] {
		require.NotNil(t, row.ReceiptNumber)
		assert.EqualValues(t, 1, *row.ReceiptNumber)
		assert.Equal(t, "2024-03-15", row.SoldOn)
	}

	lot, err := f.inventory.Get(ctx, milk)
	require.NoError(t, err)
	assert.EqualValues(t, 7, lot.Stock)
}

func TestProcessOtherReceiptTypesHaveNoNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.lot(t, "Milk", 10)

	for _, receiptType := range []string{"", "SIN_COMPROBANTE", "FACTURA", "boleta"} {
		receipt, err := f.sales.Process(ctx, []domain.SaleLine{{InventoryID: milk, ProductName: "Milk", Quantity: 1, LineTotal: 2}}, receiptType)
		require.NoError(t, err)
		assert.Nil(t, receipt.Number, receiptType)
	}

	current, err := f.issuer.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, current)
}

// Sales address lots by id and never delete them, even when stock runs out.
func TestProcessDecrementsByIDAndKeepsEmptyLot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.lot(t, "Milk", 2)

	_, err := f.sales.Process(ctx, []domain.SaleLine{{InventoryID: milk, ProductName: "Leche entera", Quantity: 3, LineTotal: 6}}, "")
	require.NoError(t, err)

	lot, err := f.inventory.Get(ctx, milk)
	require.NoError(t, err)
	assert.EqualValues(t, -1, lot.Stock)

	rows, err := f.sales.ListByDay(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Leche entera", rows[0].Product)
}

func TestProcessFailureAbandonsWholeBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.lot(t, "Milk", 10)

	_, err := f.sales.Process(ctx, []domain.SaleLine{
		{InventoryID: milk, ProductName: "Milk", Quantity: 4, LineTotal: 8},
		{InventoryID: 9999, ProductName: "Ghost", Quantity: 1, LineTotal: 1},
	}, "BOLETA")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	lot, err := f.inventory.Get(ctx, milk)
	require.NoError(t, err)
	assert.EqualValues(t, 10, lot.Stock)

	rows, err := f.sales.ListByDay(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.Empty(t, rows)

	current, err := f.issuer.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, current, "a failed sale must not consume a receipt number")
}

func TestProcessRejectsInvalidLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sales.Process(ctx, nil, "BOLETA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sales.Process(ctx, []domain.SaleLine{{InventoryID: 1, ProductName: "Milk", Quantity: 0}}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
