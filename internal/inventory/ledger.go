package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"hattucci/domain"
	"hattucci/internal/database"
	"hattucci/internal/keylock"
)

// Ledger tracks current stock per lot.
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

// NormalizeKey trims the product and truncates the expiration to its day.
func NormalizeKey(key domain.LotKey) (domain.LotKey, error) {
	key.Product = strings.TrimSpace(key.Product)
	if key.Product == "" {
		return key, &domain.ValidationError{Field: "producto", Reason: "es requerido"}
	}
	if key.SalePrice < 0 {
		return key, &domain.ValidationError{Field: "precio_venta", Reason: "no puede ser negativo"}
	}
	day, err := domain.ParseDay("vencimiento", key.ExpiresOn)
	if err != nil {
		return key, err
	}
	key.ExpiresOn = day
	return key, nil
}

// Upsert adds delta (possibly negative) to the lot matching key, creating the
// lot on a positive delta and deleting it once stock drops to zero or below.
func (l *Ledger) Upsert(ctx context.Context, key domain.LotKey, delta int64) (domain.Reconciliation, error) {
	key, err := NormalizeKey(key)
	if err != nil {
		return domain.Reconciliation{}, err
	}

	unlock := l.locks.Lock(key.LockKey())
	defer unlock()

	var rec domain.Reconciliation
	err = database.WithTx(ctx, l.db, func(tx *sqlx.Tx) error {
		rec, err = Reconcile(ctx, tx, key, delta)
		return err
	})
	if err != nil {
		l.logger.Error("inventory reconciliation failed", zap.String("lot", key.LockKey()), zap.Int64("delta", delta), zap.Error(err))
		return domain.Reconciliation{}, err
	}
	l.logReconciliation(key, delta, rec)
	return rec, nil
}

func (l *Ledger) logReconciliation(key domain.LotKey, delta int64, rec domain.Reconciliation) {
	switch {
	case rec.Created:
		l.logger.Info("inventory lot created", zap.Int64("lot_id", rec.LotID), zap.String("product", key.Product), zap.Int64("stock", rec.Stock))
	case rec.Removed:
		l.logger.Info("inventory lot depleted", zap.Int64("lot_id", rec.LotID), zap.String("product", key.Product))
	case rec.LotID == 0:
		l.logger.Warn("no lot to reconcile", zap.String("lot", key.LockKey()), zap.Int64("delta", delta))
	}
}

// Reconcile applies delta to the lot matching key inside q. The caller must
// hold the lot key lock. A non-positive delta against a missing lot is a no-op.
func Reconcile(ctx context.Context, q sqlx.ExtContext, key domain.LotKey, delta int64) (domain.Reconciliation, error) {
	var lotID int64
	err := sqlx.GetContext(ctx, q, &lotID,
		`SELECT id FROM inventario WHERE producto = ? AND precio_venta = ? AND fecha_vencimiento = ? LIMIT 1`,
		key.Product, key.SalePrice, key.ExpiresOn)
	if errors.Is(err, sql.ErrNoRows) {
		if delta <= 0 {
			return domain.Reconciliation{}, nil
		}
		res, err := q.ExecContext(ctx,
			`INSERT INTO inventario (producto, fecha_vencimiento, stock, precio_venta) VALUES (?, ?, ?, ?)`,
			key.Product, key.ExpiresOn, delta, key.SalePrice)
		if err != nil {
			return domain.Reconciliation{}, fmt.Errorf("insert inventory lot: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return domain.Reconciliation{}, fmt.Errorf("read inventory lot id: %w", err)
		}
		return domain.Reconciliation{LotID: id, Created: true, Stock: delta}, nil
	}
	if err != nil {
		return domain.Reconciliation{}, fmt.Errorf("find inventory lot: %w", err)
	}

	if _, err := q.ExecContext(ctx, `UPDATE inventario SET stock = stock + ? WHERE id = ?`, delta, lotID); err != nil {
		return domain.Reconciliation{}, fmt.Errorf("update inventory stock: %w", err)
	}
	var stock int64
	if err := sqlx.GetContext(ctx, q, &stock, `SELECT stock FROM inventario WHERE id = ?`, lotID); err != nil {
		return domain.Reconciliation{}, fmt.Errorf("read inventory stock: %w", err)
	}
	rec := domain.Reconciliation{LotID: lotID, Stock: stock}
	if stock <= 0 {
		if _, err := q.ExecContext(ctx, `DELETE FROM inventario WHERE id = ?`, lotID); err != nil {
			return domain.Reconciliation{}, fmt.Errorf("delete depleted lot: %w", err)
		}
		rec.Removed = true
	}
	return rec, nil
}

// Decrement subtracts quantity from the lot with the given id. The lot is kept
// even when its stock reaches zero or below.
func Decrement(ctx context.Context, q sqlx.ExecerContext, lotID, quantity int64) error {
	res, err := q.ExecContext(ctx, `UPDATE inventario SET stock = stock - ? WHERE id = ?`, quantity, lotID)
	if err != nil {
		return fmt.Errorf("decrement lot %d: %w", lotID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement lot %d: %w", lotID, err)
	}
	if n == 0 {
		return fmt.Errorf("lot %d: %w", lotID, domain.ErrNotFound)
	}
	return nil
}

// List returns every lot, newest first.
func (l *Ledger) List(ctx context.Context) ([]domain.InventoryLot, error) {
	lots := []domain.InventoryLot{}
	if err := l.db.SelectContext(ctx, &lots,
		`SELECT id, producto, fecha_vencimiento, stock, precio_venta FROM inventario ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return lots, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (domain.InventoryLot, error) {
	var lot domain.InventoryLot
	err := l.db.GetContext(ctx, &lot,
		`SELECT id, producto, fecha_vencimiento, stock, precio_venta FROM inventario WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return lot, fmt.Errorf("lot %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return lot, fmt.Errorf("get lot %d: %w", id, err)
	}
	return lot, nil
}

// Delete removes a lot regardless of its stock.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM inventario WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lot %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("lot %d: %w", id, domain.ErrNotFound)
	}
	l.logger.Info("inventory lot deleted", zap.Int64("lot_id", id))
	return nil
}

// StockTotal sums stock across every lot of product expiring on day.
func (l *Ledger) StockTotal(ctx context.Context, product, day string) (int64, error) {
	day, err := domain.ParseDay("fecha", day)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := l.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(stock), 0) FROM inventario WHERE producto = ? AND fecha_vencimiento = ?`,
		strings.TrimSpace(product), day); err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}
