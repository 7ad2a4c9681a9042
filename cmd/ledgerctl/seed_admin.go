package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
)

var (
	seedEmail    string
	seedName     string
	seedPassword string

	seedAdminCmd = &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea el usuario administrador inicial si no existe",
		Args:  cobra.NoArgs,
		RunE:  runSeedAdmin,
	}
)

func init() {
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "admin@inventario.local", "email del administrador")
	seedAdminCmd.Flags().StringVar(&seedName, "name", "Administrador", "nombre visible")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "contraseña (por defecto ADMIN_PASSWORD)")
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	password := seedPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if password == "" {
		return errors.New("contraseña requerida: --password o ADMIN_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return err
	}
	defer backend.Close()

	uc := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := uc.RegisterUser(ctx, dto.CreateUserRequest{
		Email:    seedEmail,
		Password: password,
		Name:     seedName,
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		fmt.Fprintf(cmd.OutOrStdout(), "el usuario %s ya existe\n", seedEmail)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("administrador creado")
	fmt.Fprintf(cmd.OutOrStdout(), "administrador %s creado\n", user.Email)
	return nil
}
