package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hattucci/domain"
)

const movementsSheet = "Movimientos"

// WriteMovementsXLSX renders a day's movements as a single-sheet workbook:
// one row per movement followed by the sales, purchases and profit totals.
func WriteMovementsXLSX(w io.Writer, m domain.DailyMovements) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", movementsSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	rows := [][]any{{"Tipo", "Producto", "Cantidad", "Total", "Fecha"}}
	for _, mv := range m.Movements {
		rows = append(rows, []any{mv.Kind, mv.Product, mv.Quantity, mv.Total, mv.Date})
	}
	rows = append(rows,
		[]any{},
		[]any{"Total ventas", nil, nil, m.TotalSales},
		[]any{"Total compras", nil, nil, m.TotalPurchases},
		[]any{"Ganancia", nil, nil, m.Profit},
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(movementsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
