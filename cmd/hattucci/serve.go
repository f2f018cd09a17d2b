package main

import (
	"github.com/spf13/cobra"

	"hattucci/internal/api"
	"hattucci/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			handler := api.New(db.DB, a.cfg, a.logger.Named("api"))
			return server.Run(ctx, ":"+a.cfg.HTTPPort, handler.Router(), a.logger, a.cfg.ShutdownTimeout)
		},
	}
}
