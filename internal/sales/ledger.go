package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"hattucci/domain"
	"hattucci/internal/correlative"
	"hattucci/internal/database"
	"hattucci/internal/inventory"
	"hattucci/internal/keylock"
)

// Ledger records point-of-sale transactions and depletes inventory.
type Ledger struct {
	db     *sqlx.DB
	locks  *keylock.Locker
	logger *zap.Logger
	now    func() time.Time
}

func New(db *sqlx.DB, locks *keylock.Locker, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{db: db, locks: locks, logger: logger, now: time.Now}
}

// Process commits a whole sale atomically: the optional correlative, one stock
// decrement per line (by lot id) and one sale row per line, dated today.
// Any failure abandons every step, including the receipt number.
func (l *Ledger) Process(ctx context.Context, lines []domain.SaleLine, receiptType string) (domain.Receipt, error) {
	if err := domain.ValidateSaleLines(lines); err != nil {
		return domain.Receipt{}, err
	}
	boleta := strings.TrimSpace(receiptType) == domain.ReceiptBoleta
	if boleta {
		unlock := l.locks.Lock(correlative.LockKey)
		defer unlock()
	}

	today := domain.Today(l.now())
	var receipt domain.Receipt
	err := database.WithTx(ctx, l.db, func(tx *sqlx.Tx) error {
		if boleta {
			n, err := correlative.Issue(ctx, tx)
			if err != nil {
				return err
			}
			receipt.Number = &n
		}
		for _, line := range lines {
			if err := inventory.Decrement(ctx, tx, line.InventoryID, line.Quantity); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO ventas (producto, cantidad, total, fecha_venta, numero_boleta) VALUES (?, ?, ?, ?, ?)`,
				strings.TrimSpace(line.ProductName), line.Quantity, line.LineTotal, today, receipt.Number); err != nil {
				return fmt.Errorf("insert sale line: %w", err)
			}
			receipt.Lines++
		}
		return nil
	})
	if err != nil {
		l.logger.Error("sale abandoned", zap.Int("lines", len(lines)), zap.String("receipt_type", receiptType), zap.Error(err))
		return domain.Receipt{}, err
	}

	fields := []zap.Field{zap.Int("lines", receipt.Lines), zap.String("date", today)}
	if receipt.Number != nil {
		fields = append(fields, zap.Int64("receipt_number", *receipt.Number))
	}
	l.logger.Info("sale processed", fields...)
	return receipt, nil
}

// ListByDay returns the sale rows dated day in insertion order.
func (l *Ledger) ListByDay(ctx context.Context, day string) ([]domain.SaleRecord, error) {
	day, err := domain.ParseDay("fecha", day)
	if err != nil {
		return nil, err
	}
	records := []domain.SaleRecord{}
	if err := l.db.SelectContext(ctx, &records,
		`SELECT id, producto, cantidad, total, fecha_venta, numero_boleta FROM ventas WHERE fecha_venta = ? ORDER BY id`, day); err != nil {
		return nil, fmt.Errorf("list sales of %s: %w", day, err)
	}
	return records, nil
}
