package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos (más recientes primero).
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository puerto de persistencia del libro de movimientos. Solo inserción.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
