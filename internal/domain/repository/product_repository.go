package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockStatusReorder filtra productos en o bajo su punto de reorden (incluye agotados).
const StockStatusReorder = "reorder"

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	ActiveOnly  bool
	StockStatus string     // "", entity.StockStatusLow, entity.StockStatusOut, StockStatusReorder
	ExpiringBy  *time.Time // vence entre hoy y esta fecha (incluidas)
	Today       time.Time  // referencia para ExpiringBy
	Search      string     // contiene, sin distinguir mayúsculas, sobre nombre, SKU o código de barras
	CategoryID  string
	SupplierID  string
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity solo se modifica con UpdateQuantity, dentro de la transacción del libro.
type ProductRepository interface {
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update persiste los datos de catálogo; nunca escribe Quantity.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity escribe la existencia solo si la almacenada sigue siendo expected;
	// si no, devuelve domain.ErrConcurrencyConflict.
	UpdateQuantity(ctx context.Context, id string, expected, quantity int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
