// Package storage elige el backend de persistencia según STORAGE_DRIVER y entrega los
// repositorios y el TxRunner ya construidos.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

// Drivers soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Backend repositorios fuera de transacción más el TxRunner del libro.
type Backend struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Movements  repository.StockMovementRepository
	Alerts     repository.InventoryAlertRepository
	Users      repository.UserRepository
	Analytics  repository.AnalyticsRepository
	Tx         inventory.TxRunner

	closeFn func()
}

// Close libera las conexiones del backend.
func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// Open abre el backend configurado. Con postgres aplica el esquema si DB_AUTO_MIGRATE está activo.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.App.StorageDriver {
	case DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return NewMemory(memory.New()), nil
	case DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("esquema aplicado")
		}
		return &Backend{
			Products:   postgres.NewProductRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Suppliers:  postgres.NewSupplierRepository(pool),
			Movements:  postgres.NewStockMovementRepository(pool),
			Alerts:     postgres.NewInventoryAlertRepository(pool),
			Users:      postgres.NewUserRepository(pool),
			Analytics:  postgres.NewAnalyticsRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			closeFn:    pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.App.StorageDriver)
	}
}

// NewMemory envuelve un memory.Store.
func NewMemory(store *memory.Store) *Backend {
	return &Backend{
		Products:   store.Products(),
		Categories: store.Categories(),
		Suppliers:  store.Suppliers(),
		Movements:  store.Movements(),
		Alerts:     store.Alerts(),
		Users:      store.Users(),
		Analytics:  store.Analytics(),
		Tx:         store,
	}
}
