package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CategoryFilter filtros del listado de categorías.
type CategoryFilter struct {
	ParentID   *string // nil: todas; "": solo raíces
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Nombre y slug son únicos: Create y Update devuelven domain.ErrDuplicate si chocan.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// List ordena por nombre.
	List(ctx context.Context, filter CategoryFilter) ([]*entity.Category, error)
	// ProductCount cuenta los productos activos de la categoría.
	ProductCount(ctx context.Context, id string) (int, error)
}
