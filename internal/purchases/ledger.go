package purchases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"hattucci/domain"
	"hattucci/internal/database"
	"hattucci/internal/inventory"
	"hattucci/internal/keylock"
)

const selectColumns = `id, nombre_proveedor, contacto_proveedor, producto, cantidad, precio_unitario, fecha_registro, fecha_vencimiento`

// Ledger records supplier acquisitions and keeps inventory in step with them.
type Ledger struct {
	db     *sqlx.DB
	locks  *keylock.Locker
	logger *zap.Logger
}

func New(db *sqlx.DB, locks *keylock.Locker, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{db: db, locks: locks, logger: logger}
}

// Record stores a purchase, accumulating quantity onto an existing row with the
// same supplier, contact, product, unit price, expiration day and registration
// day. Either way the purchased quantity is added to the matching inventory lot.
func (l *Ledger) Record(ctx context.Context, in domain.PurchaseInput) (domain.PurchaseResult, error) {
	in, err := in.Normalize()
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	lot := in.Lot()
	unlock := l.locks.Lock(in.LockKey(), lot.LockKey())
	defer unlock()

	var result domain.PurchaseResult
	err = database.WithTx(ctx, l.db, func(tx *sqlx.Tx) error {
		var existingID int64
		err := tx.GetContext(ctx, &existingID, `SELECT id FROM compras
            WHERE nombre_proveedor = ?
              AND contacto_proveedor = ?
              AND producto = ?
              AND precio_unitario = ?
              AND fecha_vencimiento = ?
              AND fecha_registro = ?
            LIMIT 1`,
			in.SupplierName, in.SupplierContact, in.Product, in.UnitPrice, in.ExpiresOn, in.RegisteredOn)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx, `INSERT INTO compras
                (nombre_proveedor, contacto_proveedor, producto, cantidad, precio_unitario, fecha_registro, fecha_vencimiento)
                VALUES (?, ?, ?, ?, ?, ?, ?)`,
				in.SupplierName, in.SupplierContact, in.Product, in.Quantity, in.UnitPrice, in.RegisteredOn, in.ExpiresOn)
			if err != nil {
				return fmt.Errorf("insert purchase: %w", err)
			}
			if result.PurchaseID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("read purchase id: %w", err)
			}
			result.Inserted = true
		case err != nil:
			return fmt.Errorf("find purchase: %w", err)
		default:
			if _, err := tx.ExecContext(ctx, `UPDATE compras SET cantidad = cantidad + ? WHERE id = ?`, in.Quantity, existingID); err != nil {
				return fmt.Errorf("update purchase quantity: %w", err)
			}
			result.PurchaseID = existingID
			result.Updated = true
		}

		_, err = inventory.Reconcile(ctx, tx, lot, in.Quantity)
		return err
	})
	if err != nil {
		l.logger.Error("purchase not recorded", zap.String("product", in.Product), zap.String("supplier", in.SupplierName), zap.Error(err))
		return domain.PurchaseResult{}, err
	}

	l.logger.Info("purchase recorded",
		zap.Int64("purchase_id", result.PurchaseID),
		zap.Bool("inserted", result.Inserted),
		zap.String("product", in.Product),
		zap.Int64("quantity", in.Quantity),
	)
	return result, nil
}

// List returns every purchase, latest registration first.
func (l *Ledger) List(ctx context.Context) ([]domain.PurchaseRecord, error) {
	records := []domain.PurchaseRecord{}
	if err := l.db.SelectContext(ctx, &records,
		`SELECT `+selectColumns+` FROM compras ORDER BY fecha_registro DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return records, nil
}

// ListByDay returns the purchases registered on day, newest first.
func (l *Ledger) ListByDay(ctx context.Context, day string) ([]domain.PurchaseRecord, error) {
	day, err := domain.ParseDay("dia", day)
	if err != nil {
		return nil, err
	}
	records := []domain.PurchaseRecord{}
	if err := l.db.SelectContext(ctx, &records,
		`SELECT `+selectColumns+` FROM compras WHERE fecha_registro = ? ORDER BY id DESC`, day); err != nil {
		return nil, fmt.Errorf("list purchases of %s: %w", day, err)
	}
	return records, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (domain.PurchaseRecord, error) {
	return get(ctx, l.db, id)
}

func get(ctx context.Context, q sqlx.QueryerContext, id int64) (domain.PurchaseRecord, error) {
	var p domain.PurchaseRecord
	err := sqlx.GetContext(ctx, q, &p, `SELECT `+selectColumns+` FROM compras WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("purchase %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("get purchase %d: %w", id, err)
	}
	return p, nil
}

// Delete removes a purchase and subtracts its quantity from the lot it fed.
// The lot disappears if its stock drops to zero or below; a lot that no longer
// exists is left alone.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	p, err := l.Get(ctx, id)
	if err != nil {
		return err
	}

	lot := p.Lot()
	unlock := l.locks.Lock(lot.LockKey())
	defer unlock()

	var rec domain.Reconciliation
	err = database.WithTx(ctx, l.db, func(tx *sqlx.Tx) error {
		// Re-read under the lock: a concurrent repeat purchase may have grown the row.
		current, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		if rec, err = inventory.Reconcile(ctx, tx, lot, -current.Quantity); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM compras WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete purchase %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			l.logger.Error("purchase not deleted", zap.Int64("purchase_id", id), zap.Error(err))
		}
		return err
	}

	l.logger.Info("purchase deleted",
		zap.Int64("purchase_id", id),
		zap.Int64("lot_id", rec.LotID),
		zap.Bool("lot_removed", rec.Removed),
	)
	return nil
}
