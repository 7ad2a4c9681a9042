package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.InventoryAlertRepository,
	) error) error
}

// MovementObserver recibe cada movimiento confirmado junto con el producto ya actualizado.
// Se invoca de forma síncrona después del Commit.
type MovementObserver interface {
	OnMovement(ctx context.Context, product *entity.Product, movement *entity.StockMovement, actor string) error
}

// StockCardGenerator genera el kardex (tarjeta de existencias) de un producto.
type StockCardGenerator interface {
	GenerateStockCard(ctx context.Context, product *entity.Product, movements []*entity.StockMovement) ([]byte, error)
}
