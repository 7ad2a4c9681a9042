package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SupplierFilter filtros del listado de proveedores.
type SupplierFilter struct {
	ActiveOnly bool
	Search     string // contiene, sin distinguir mayúsculas, sobre nombre y contacto
	Limit      int
	Offset     int
}

// SupplierStats productos activos del proveedor y su existencia valorizada a costo.
type SupplierStats struct {
	Products       int
	InventoryValue decimal.Decimal
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// List ordena por nombre.
	List(ctx context.Context, filter SupplierFilter) ([]*entity.Supplier, error)
	Stats(ctx context.Context, id string) (SupplierStats, error)
}
