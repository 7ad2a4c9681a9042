package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
)

var (
	sweepActor string

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Deriva alertas para todos los productos activos (vencimientos incluidos)",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
)

func init() {
	sweepCmd.Flags().StringVar(&sweepActor, "actor", "", "UserID que figura como resolutor de las alertas superadas")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return err
	}
	defer backend.Close()

	deriver := inventory.NewAlertDeriver(backend.Tx, backend.Products, log.Zerolog(),
		inventory.WithExpiryWindow(cfg.Inventory.ExpiryWindowDays))
	res, err := deriver.Sweep(ctx, sweepActor)
	if err != nil {
		return err
	}
	if res.Failures > 0 {
		return fmt.Errorf("barrido con %d fallos de %d productos", res.Failures, res.Products)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "productos revisados: %d\n", res.Products)
	return nil
}
