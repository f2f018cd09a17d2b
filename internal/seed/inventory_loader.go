package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"hattucci/domain"
)

type upserter interface {
	Upsert(ctx context.Context, key domain.LotKey, delta int64) (domain.Reconciliation, error)
}

// Stats counts what an import did.
type Stats struct {
	Created int
	Updated int
	Skipped int
}

// LoadInventoryFile imports the CSV at path. See LoadInventory.
func LoadInventoryFile(ctx context.Context, ledger upserter, csvPath string, logger *zap.Logger) (Stats, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return Stats{}, fmt.Errorf("unable to open inventory file %s: %w", csvPath, err)
	}
	defer file.Close()
	return LoadInventory(ctx, ledger, file, logger)
}

// LoadInventory reads producto,vencimiento,stock,precio_venta rows (after a
// header) and reconciles each into inventory. Malformed rows and rows that
// change nothing are skipped and logged.
func LoadInventory(ctx context.Context, ledger upserter, r io.Reader, logger *zap.Logger) (Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return Stats{}, fmt.Errorf("unable to read inventory header: %w", err)
	}

	var stats Stats
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Warn("unable to read inventory row", zap.Int("line", line), zap.Error(err))
			stats.Skipped++
			continue
		}
		key, stock, err := parseRow(record)
		if err != nil {
			logger.Warn("skipping inventory row", zap.Int("line", line), zap.Error(err))
			stats.Skipped++
			continue
		}

		rec, err := ledger.Upsert(ctx, key, stock)
		if errors.Is(err, domain.ErrInvalidInput) {
			logger.Warn("skipping inventory row", zap.Int("line", line), zap.Error(err))
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}
		switch {
		case rec.LotID == 0:
			logger.Warn("inventory row changed nothing", zap.Int("line", line), zap.Int64("stock", stock))
			stats.Skipped++
		case rec.Created:
			stats.Created++
		default:
			stats.Updated++
		}
	}

	logger.Info("inventory import finished",
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func parseRow(record []string) (domain.LotKey, int64, error) {
	if len(record) < 4 {
		return domain.LotKey{}, 0, fmt.Errorf("expected 4 columns, got %d", len(record))
	}
	stock, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
	if err != nil {
		return domain.LotKey{}, 0, fmt.Errorf("stock: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return domain.LotKey{}, 0, fmt.Errorf("precio_venta: %w", err)
	}
	return domain.LotKey{Product: record[0], ExpiresOn: record[1], SalePrice: price}, stock, nil
}
