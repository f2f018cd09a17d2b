package domain

import "strconv"

type InventoryLot struct {
	ID        int64   `db:"id" json:"id"`
	Product   string  `db:"producto" json:"producto"`
	ExpiresOn string  `db:"fecha_vencimiento" json:"fecha_vencimiento"`
	Stock     int64   `db:"stock" json:"stock"`
	SalePrice float64 `db:"precio_venta" json:"precio_venta"`
}

// LotKey identifies an inventory lot. Two lots never share a key.
type LotKey struct {
	Product   string
	SalePrice float64
	ExpiresOn string
}

// LockKey renders the key for per-key serialization.
func (k LotKey) LockKey() string {
	return "lot|" + k.Product + "|" + strconv.FormatFloat(k.SalePrice, 'f', -1, 64) + "|" + k.ExpiresOn
}

// Reconciliation describes what an inventory upsert did.
type Reconciliation struct {
	LotID   int64 `json:"lot_id"`
	Created bool  `json:"created"`
	Removed bool  `json:"removed"`
	Stock   int64 `json:"stock"`
}
