package domain

import (
	"strconv"
	"strings"
)

type PurchaseRecord struct {
	ID              int64   `db:"id" json:"id"`
	SupplierName    string  `db:"nombre_proveedor" json:"nombre_proveedor"`
	SupplierContact string  `db:"contacto_proveedor" json:"contacto_proveedor"`
	Product         string  `db:"producto" json:"producto"`
	Quantity        int64   `db:"cantidad" json:"cantidad"`
	UnitPrice       float64 `db:"precio_unitario" json:"precio_unitario"`
	RegisteredOn    string  `db:"fecha_registro" json:"fecha_registro"`
	ExpiresOn       string  `db:"fecha_vencimiento" json:"fecha_vencimiento"`
}

// PurchaseInput is an incoming supplier acquisition. Dates may carry a time component.
type PurchaseInput struct {
	SupplierName    string
	SupplierContact string
	Product         string
	Quantity        int64
	UnitPrice       float64
	RegisteredOn    string
	ExpiresOn       string
}

// Normalize trims text fields and truncates both dates to the day.
func (p PurchaseInput) Normalize() (PurchaseInput, error) {
	p.SupplierName = strings.TrimSpace(p.SupplierName)
	p.SupplierContact = strings.TrimSpace(p.SupplierContact)
	p.Product = strings.TrimSpace(p.Product)
	if p.SupplierName == "" || p.Product == "" {
		return p, &ValidationError{Field: "compra", Reason: "proveedor y producto son requeridos"}
	}
	if p.Quantity <= 0 {
		return p, &ValidationError{Field: "cantidad", Reason: "debe ser mayor que cero"}
	}
	if p.UnitPrice < 0 {
		return p, &ValidationError{Field: "precio_unitario", Reason: "no puede ser negativo"}
	}
	var err error
	if p.RegisteredOn, err = ParseDay("fecha_registro", p.RegisteredOn); err != nil {
		return p, err
	}
	if p.ExpiresOn, err = ParseDay("fecha_vencimiento", p.ExpiresOn); err != nil {
		return p, err
	}
	return p, nil
}

// LockKey renders the purchase matching key.
func (p PurchaseInput) LockKey() string {
	return strings.Join([]string{
		"purchase", p.SupplierName, p.SupplierContact, p.Product,
		strconv.FormatFloat(p.UnitPrice, 'f', -1, 64), p.ExpiresOn, p.RegisteredOn,
	}, "|")
}

// Lot is the inventory lot a purchase feeds. The unit price doubles as the lot price.
func (p PurchaseInput) Lot() LotKey {
	return LotKey{Product: p.Product, SalePrice: p.UnitPrice, ExpiresOn: p.ExpiresOn}
}

// Lot is the inventory lot this purchase fed when it was recorded.
func (p PurchaseRecord) Lot() LotKey {
	return LotKey{Product: p.Product, SalePrice: p.UnitPrice, ExpiresOn: p.ExpiresOn}
}

type PurchaseResult struct {
	PurchaseID int64 `json:"-"`
	Inserted   bool  `json:"insert,omitempty"`
	Updated    bool  `json:"update,omitempty"`
}
