package domain

import "strings"

// ReceiptBoleta is the receipt type that consumes a correlative number.
const ReceiptBoleta = "BOLETA"

// ReceiptNone is assumed when the caller sends no receipt type.
const ReceiptNone = "SIN_COMPROBANTE"

type SaleRecord struct {
	ID            int64   `db:"id" json:"id"`
	Product       string  `db:"producto" json:"producto"`
	Quantity      int64   `db:"cantidad" json:"cantidad"`
	Total         float64 `db:"total" json:"total"`
	SoldOn        string  `db:"fecha_venta" json:"fecha_venta"`
	ReceiptNumber *int64  `db:"numero_boleta" json:"numero_boleta,omitempty"`
}

// SaleLine is one line item of a point-of-sale transaction.
type SaleLine struct {
	InventoryID int64
	ProductName string
	Quantity    int64
	LineTotal   float64
}

func ValidateSaleLines(lines []SaleLine) error {
	if len(lines) == 0 {
		return &ValidationError{Field: "venta", Reason: "la venta no tiene productos"}
	}
	for _, l := range lines {
		if l.InventoryID <= 0 || strings.TrimSpace(l.ProductName) == "" || l.Quantity <= 0 {
			return &ValidationError{Field: "venta", Reason: "cada producto requiere id, nombre y cantidad"}
		}
	}
	return nil
}

// Receipt is the outcome of a processed sale. Number is nil unless a BOLETA was requested.
type Receipt struct {
	Number *int64
	Lines  int
}
