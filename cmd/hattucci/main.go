package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hattucci/internal/config"
	"hattucci/internal/database"
	"hattucci/internal/logging"
	"hattucci/internal/migrations"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "hattucci",
		Short:         "Hattucci minimarket back-office: inventory, purchases, sales and daily reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			a.cfg = config.Load()
			logger, err := logging.New(a.cfg.Development())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.logger = logger
			for _, w := range a.cfg.Warnings {
				logger.Warn(w)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newReportCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openDB connects and brings the schema up to date.
func (a *app) openDB(ctx context.Context) (*database.DB, error) {
	db, err := database.Connect(a.cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	a.logger.Info("database ready", zap.String("dialect", string(db.Dialect)))
	return db, nil
}
