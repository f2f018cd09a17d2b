package reports

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hattucci/domain"
)

// Aggregator computes daily totals over the sale and purchase ledgers.
type Aggregator struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func New(db *sqlx.DB, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{db: db, logger: logger}
}

// Daily summarizes the sales and purchases of one calendar day. Missing sums are zero.
func (a *Aggregator) Daily(ctx context.Context, day string) (domain.DailyReport, error) {
	day, err := domain.ParseDay("fecha", day)
	if err != nil {
		return domain.DailyReport{}, err
	}

	var sales struct {
		Total     decimal.NullDecimal `db:"total_ventas"`
		ItemsSold decimal.NullDecimal `db:"productos_vendidos"`
		Count     int64               `db:"num_ventas"`
	}
	if err := a.db.GetContext(ctx, &sales, `SELECT
            SUM(total) AS total_ventas,
            SUM(cantidad) AS productos_vendidos,
            COUNT(*) AS num_ventas
        FROM ventas
        WHERE DATE(fecha_venta) = ?`, day); err != nil {
		return domain.DailyReport{}, fmt.Errorf("summarize sales of %s: %w", day, err)
	}

	var purchases struct {
		Total decimal.NullDecimal `db:"total_compras"`
		Count int64               `db:"num_compras"`
	}
	if err := a.db.GetContext(ctx, &purchases, `SELECT
            SUM(cantidad * precio_unitario) AS total_compras,
            COUNT(*) AS num_compras
        FROM compras
        WHERE DATE(fecha_registro) = ?`, day); err != nil {
		return domain.DailyReport{}, fmt.Errorf("summarize purchases of %s: %w", day, err)
	}

	return domain.DailyReport{
		Sales: domain.SalesSummary{
			Total:     orZero(sales.Total).InexactFloat64(),
			ItemsSold: orZero(sales.ItemsSold).IntPart(),
			Count:     sales.Count,
		},
		Purchases: domain.PurchasesSummary{
			Total: orZero(purchases.Total).InexactFloat64(),
			Count: purchases.Count,
		},
	}, nil
}

// Movements lists every sale and purchase of one day, sales first, with the
// day's totals and profit (sales minus purchases).
func (a *Aggregator) Movements(ctx context.Context, day string) (domain.DailyMovements, error) {
	day, err := domain.ParseDay("fecha", day)
	if err != nil {
		return domain.DailyMovements{}, err
	}

	var sales []movementRow
	if err := a.db.SelectContext(ctx, &sales, `SELECT
            producto, cantidad, total, fecha_venta AS fecha
        FROM ventas
        WHERE DATE(fecha_venta) = ?
        ORDER BY id`, day); err != nil {
		return domain.DailyMovements{}, fmt.Errorf("list sales of %s: %w", day, err)
	}

	var purchases []movementRow
	if err := a.db.SelectContext(ctx, &purchases, `SELECT
            producto, cantidad, (cantidad * precio_unitario) AS total, fecha_registro AS fecha
        FROM compras
        WHERE DATE(fecha_registro) = ?
        ORDER BY id`, day); err != nil {
		return domain.DailyMovements{}, fmt.Errorf("list purchases of %s: %w", day, err)
	}

	out := domain.DailyMovements{Day: day, Movements: make([]domain.Movement, 0, len(sales)+len(purchases))}
	totalSales, totalPurchases := decimal.Zero, decimal.Zero
	for _, r := range sales {
		out.Movements = append(out.Movements, r.movement(domain.MovementSale))
		totalSales = totalSales.Add(orZero(r.Total))
	}
	for _, r := range purchases {
		out.Movements = append(out.Movements, r.movement(domain.MovementPurchase))
		totalPurchases = totalPurchases.Add(orZero(r.Total))
	}
	out.TotalSales = totalSales.InexactFloat64()
	out.TotalPurchases = totalPurchases.InexactFloat64()
	out.Profit = totalSales.Sub(totalPurchases).InexactFloat64()

	a.logger.Debug("daily movements aggregated",
		zap.String("day", day),
		zap.Int("sales", len(sales)),
		zap.Int("purchases", len(purchases)),
	)
	return out, nil
}

type movementRow struct {
	Product  string              `db:"producto"`
	Quantity int64               `db:"cantidad"`
	Total    decimal.NullDecimal `db:"total"`
	Date     string              `db:"fecha"`
}

func (r movementRow) movement(kind string) domain.Movement {
	return domain.Movement{
		Kind:     kind,
		Product:  r.Product,
		Quantity: r.Quantity,
		Total:    orZero(r.Total).InexactFloat64(),
		Date:     r.Date,
	}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
