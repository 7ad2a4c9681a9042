package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// SKU y Barcode vacíos se derivan del correlativo. InitialQuantity se registra como movimiento de compra.
type CreateProductRequest struct {
	SKU             string          `json:"sku" validate:"omitempty,max=50"`
	Barcode         string          `json:"barcode" validate:"omitempty,max=50"`
	Name            string          `json:"name" validate:"required,min=1,max=100"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID      string          `json:"supplier_id" validate:"omitempty,uuid"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	ReorderLevel    *int            `json:"reorder_level" validate:"omitempty,min=0"`
	InitialQuantity int             `json:"initial_quantity" validate:"min=0"`
	ManufactureDate *string         `json:"manufacture_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate      *string         `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProductRequest entrada para actualizar un producto. No incluye cantidad: la existencia
// solo cambia con movimientos. ClearExpiryDate quita la fecha de vencimiento.
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID      *string          `json:"supplier_id" validate:"omitempty,uuid"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	ReorderLevel    *int             `json:"reorder_level" validate:"omitempty,min=0"`
	ManufactureDate *string          `json:"manufacture_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate      *string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	ClearExpiryDate bool             `json:"clear_expiry_date"`
	IsActive        *bool            `json:"is_active"`
}

// ProductResponse salida de un producto con sus valores calculados.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Quantity        int             `json:"quantity"`
	ReorderLevel    int             `json:"reorder_level"`
	StockStatus     string          `json:"stock_status"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ManufactureDate *string         `json:"manufacture_date"`
	ExpiryDate      *string         `json:"expiry_date"`
	DaysToExpiry    *int            `json:"days_to_expiry"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
