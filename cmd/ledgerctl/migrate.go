package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema embebido en PostgreSQL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.App.StorageDriver != storage.DriverPostgres {
			return fmt.Errorf("migrate requiere STORAGE_DRIVER=postgres (actual: %s)", cfg.App.StorageDriver)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cfg.DB.AutoMigrate = true
		backend, err := storage.Open(ctx, cfg, log.Component("storage"))
		if err != nil {
			return err
		}
		backend.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "esquema aplicado")
		return nil
	},
}
