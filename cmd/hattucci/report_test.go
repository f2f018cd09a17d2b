package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"hattucci/domain"
)

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	summary := domain.DailyReport{
		Sales:     domain.SalesSummary{Total: 12, ItemsSold: 3, Count: 1},
		Purchases: domain.PurchasesSummary{Total: 8, Count: 1},
	}
	movements := domain.DailyMovements{
		Day: "2024-03-15",
		Movements: []domain.Movement{
			{Kind: domain.MovementSale, Product: "Milk", Quantity: 3, Total: 12, Date: "2024-03-15"},
			{Kind: domain.MovementPurchase, Product: "Milk", Quantity: 4, Total: 8, Date: "2024-03-15"},
		},
		TotalSales:     12,
		TotalPurchases: 8,
		Profit:         4,
	}

	renderReport(&buf, movements.Day, summary, movements)

	out := buf.String()
	assert.Contains(t, out, "Resumen 2024-03-15")
	assert.Contains(t, out, "VENTA")
	assert.Contains(t, out, "COMPRA")
	assert.Contains(t, out, "12.00")
	assert.Contains(t, out, "4.00")
}
