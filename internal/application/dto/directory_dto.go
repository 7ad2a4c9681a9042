package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría. ParentID vacío la deja como raíz.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
	Description string `json:"description"`
}

// UpdateCategoryRequest entrada para actualizar una categoría. ClearParent la vuelve raíz.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	ClearParent bool    `json:"clear_parent"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	ParentID    string    `json:"parent_id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryDetailResponse categoría con sus subcategorías directas y el conteo de productos activos.
type CategoryDetailResponse struct {
	CategoryResponse
	ProductCount int                `json:"product_count"`
	Children     []CategoryResponse `json:"children"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Address       string `json:"address"`
	Website       string `json:"website" validate:"omitempty,url,max=255"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address"`
	Website       *string `json:"website" validate:"omitempty,url,max=255"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Website       string    `json:"website"`
	Notes         string    `json:"notes"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SupplierDetailResponse proveedor con lo que abastece: productos activos y su existencia a costo.
type SupplierDetailResponse struct {
	SupplierResponse
	TotalProductsSupplied int             `json:"total_products_supplied"`
	TotalInventoryValue   decimal.Decimal `json:"total_inventory_value"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
