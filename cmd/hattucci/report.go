package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"hattucci/domain"
	"hattucci/internal/reports"
)

func newReportCmd(a *app) *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the sales, purchases and movements of one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if day == "" {
				day = domain.Today(time.Now())
			}
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			agg := reports.New(db.DB, a.logger.Named("reports"))
			summary, err := agg.Daily(ctx, day)
			if err != nil {
				return err
			}
			movements, err := agg.Movements(ctx, day)
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), movements.Day, summary, movements)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "fecha", "", "day to report (YYYY-MM-DD, defaults to today)")
	return cmd
}

func renderReport(w io.Writer, day string, summary domain.DailyReport, m domain.DailyMovements) {
	totals := table.NewWriter()
	totals.SetOutputMirror(w)
	totals.SetTitle("Resumen " + day)
	totals.AppendHeader(table.Row{"", "Total", "Registros", "Productos"})
	totals.AppendRow(table.Row{"Ventas", money(summary.Sales.Total), summary.Sales.Count, summary.Sales.ItemsSold})
	totals.AppendRow(table.Row{"Compras", money(summary.Purchases.Total), summary.Purchases.Count, ""})
	totals.AppendFooter(table.Row{"Ganancia", money(m.Profit), "", ""})
	totals.Render()

	fmt.Fprintln(w)

	moves := table.NewWriter()
	moves.SetOutputMirror(w)
	moves.SetTitle("Movimientos")
	moves.AppendHeader(table.Row{"Tipo", "Producto", "Cantidad", "Total", "Fecha"})
	for _, mv := range m.Movements {
		moves.AppendRow(table.Row{mv.Kind, mv.Product, mv.Quantity, money(mv.Total), mv.Date})
	}
	moves.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	moves.Render()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
