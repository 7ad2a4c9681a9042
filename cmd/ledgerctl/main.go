// ledgerctl tareas de operación sobre el almacenamiento configurado: barrido de alertas,
// esquema y usuario administrador inicial.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

var (
	timeout time.Duration

	cfg *config.Config
	log *logger.Logger

	rootCmd = &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operación del libro de inventario",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			log = logger.New(logger.Config{
				Env:     cfg.App.Env,
				Level:   cfg.Log.Level,
				Service: "ledgerctl",
			})
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "tiempo máximo de la operación")
	rootCmd.AddCommand(sweepCmd, migrateCmd, seedAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("ledgerctl")
		} else {
			os.Stderr.WriteString("ledgerctl: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
