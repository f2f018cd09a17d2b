// Package correlative hands out sequential receipt numbers for formal sales.
package correlative

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"hattucci/internal/database"
	"hattucci/internal/keylock"
)

// LockKey serializes every writer of the counter table.
const LockKey = "correlativo"

type Issuer struct {
	db     *sqlx.DB
	locks  *keylock.Locker
	logger *zap.Logger
}

func NewIssuer(db *sqlx.DB, locks *keylock.Locker, logger *zap.Logger) *Issuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Issuer{db: db, locks: locks, logger: logger}
}

// Next issues and persists the next receipt number in its own transaction.
func (i *Issuer) Next(ctx context.Context) (int64, error) {
	unlock := i.locks.Lock(LockKey)
	defer unlock()

	var n int64
	err := database.WithTx(ctx, i.db, func(tx *sqlx.Tx) error {
		var err error
		n, err = Issue(ctx, tx)
		return err
	})
	if err != nil {
		i.logger.Error("correlative not issued", zap.Error(err))
		return 0, err
	}
	return n, nil
}

// Current returns the highest issued number, 0 when none was issued yet.
func (i *Issuer) Current(ctx context.Context) (int64, error) {
	var n int64
	if err := i.db.GetContext(ctx, &n, `SELECT COALESCE(MAX(numero), 0) FROM boletas_correlativo`); err != nil {
		return 0, fmt.Errorf("read correlative: %w", err)
	}
	return n, nil
}

// Issue appends max+1 (or 1 on an empty table) in a single statement inside q
// and returns it. The caller must hold LockKey; the UNIQUE index on numero
// rejects duplicates from writers outside this process.
func Issue(ctx context.Context, q sqlx.ExtContext) (int64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO boletas_correlativo (numero) SELECT COALESCE(MAX(numero), 0) + 1 FROM boletas_correlativo`)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("correlative issued concurrently: %w", err)
		}
		return 0, fmt.Errorf("insert correlative: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read correlative id: %w", err)
	}
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, `SELECT numero FROM boletas_correlativo WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("read correlative: %w", err)
	}
	return n, nil
}
