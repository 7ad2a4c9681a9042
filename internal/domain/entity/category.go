package entity

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Category categoría de productos. Puede colgar de otra (jerárquica); ParentID vacío si es raíz.
type Category struct {
	ID          string
	ParentID    string
	Name        string // único
	Slug        string // único, derivado del nombre
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate invariantes de la categoría.
func (c *Category) Validate() error {
	if c.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	if len(c.Name) > 50 {
		return domain.Invalid("name", "máximo 50 caracteres")
	}
	if c.ParentID != "" && c.ParentID == c.ID {
		return domain.Invalid("parent_id", "una categoría no puede ser su propio padre")
	}
	return nil
}
