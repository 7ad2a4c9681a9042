package entity

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Supplier proveedor de productos. Dar de baja lo desactiva; sus productos conservan la referencia.
type Supplier struct {
	ID            string
	Name          string // único
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Website       string
	Notes         string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Supplier) Validate() error {
	if s.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	if len(s.Name) > 100 {
		return domain.Invalid("name", "máximo 100 caracteres")
	}
	return nil
}
