package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect names the SQL flavor behind a connection.
type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

const mysqlPrefix = "mysql://"

// DB is a connection pool that remembers its dialect.
type DB struct {
	*sqlx.DB
	Dialect Dialect
}

// Connect opens the datastore named by dsn. A "mysql://" prefix selects MySQL
// (the remainder is a go-sql-driver DSN); anything else is handed to SQLite.
func Connect(dsn string) (*DB, error) {
	dialect, driverDSN := parseDSN(dsn)

	db, err := sqlx.Connect(string(dialect), driverDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialect, err)
	}
	switch dialect {
	case SQLite:
		// SQLite allows one writer; a single connection keeps transactions from tripping over SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	case MySQL:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	return &DB{DB: db, Dialect: dialect}, nil
}

func parseDSN(dsn string) (Dialect, string) {
	if strings.HasPrefix(dsn, mysqlPrefix) {
		return MySQL, strings.TrimPrefix(dsn, mysqlPrefix)
	}
	return SQLite, strings.TrimPrefix(dsn, "sqlite://")
}

// WithTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(sqliteErr.Error(), "UNIQUE")
		}
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
