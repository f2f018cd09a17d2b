package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hattucci/internal/inventory"
	"hattucci/internal/keylock"
	"hattucci/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import inventory lots from a CSV file (producto,vencimiento,stock,precio_venta)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			ledger := inventory.New(db.DB, keylock.Default(), a.logger.Named("inventory"))
			stats, err := seed.LoadInventoryFile(ctx, ledger, file, a.logger.Named("seed"))
			if err != nil {
				return err
			}
			a.logger.Info("inventory imported",
				zap.Int("created", stats.Created),
				zap.Int("updated", stats.Updated),
				zap.Int("skipped", stats.Skipped),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d, skipped %d\n", stats.Created, stats.Updated, stats.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "assets/inventario.csv", "CSV file to import")
	return cmd
}
