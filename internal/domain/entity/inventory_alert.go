package entity

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// AlertType clase de alerta de inventario.
type AlertType string

// Tipos de alerta.
const (
	AlertLowStock   AlertType = "low_stock"
	AlertOutOfStock AlertType = "out_of_stock"
	AlertExpiring   AlertType = "expiring"
	AlertExpired    AlertType = "expired"
)

// StockAlertTypes y ExpiryAlertTypes agrupan los tipos por regla.
var (
	StockAlertTypes  = []AlertType{AlertLowStock, AlertOutOfStock}
	ExpiryAlertTypes = []AlertType{AlertExpiring, AlertExpired}
)

// ParseAlertType valida s contra los tipos conocidos.
func ParseAlertType(s string) (AlertType, error) {
	switch t := AlertType(s); t {
	case AlertLowStock, AlertOutOfStock, AlertExpiring, AlertExpired:
		return t, nil
	}
	return "", domain.Invalid("type", "tipo de alerta desconocido: "+s)
}

// AlertFields valores mutables de una alerta no resuelta.
type AlertFields struct {
	Message      string
	Threshold    *int
	DaysToExpiry *int
}

// Validate aplica las reglas de campos por tipo.
func (f AlertFields) Validate(t AlertType) error {
	switch t {
	case AlertLowStock:
		if f.Threshold == nil {
			return domain.Invalid("threshold", "requerido para low_stock")
		}
	case AlertExpiring:
		if f.DaysToExpiry == nil {
			return domain.Invalid("days_to_expiry", "requerido para expiring")
		}
		if f.Threshold != nil {
			return domain.Invalid("threshold", "no aplica a alertas de vencimiento")
		}
	case AlertExpired:
		if f.DaysToExpiry != nil {
			return domain.Invalid("days_to_expiry", "no aplica a expired")
		}
		if f.Threshold != nil {
			return domain.Invalid("threshold", "no aplica a alertas de vencimiento")
		}
	}
	if t == AlertLowStock || t == AlertOutOfStock {
		if f.DaysToExpiry != nil {
			return domain.Invalid("days_to_expiry", "no aplica a alertas de stock")
		}
	}
	return nil
}

// InventoryAlert alerta derivada del estado del producto.
// Como máximo una alerta no resuelta por (ProductID, Type).
type InventoryAlert struct {
	ID           string
	ProductID    string
	Type         AlertType
	Message      string
	Threshold    *int
	DaysToExpiry *int
	IsResolved   bool
	ResolvedAt   *time.Time
	ResolvedBy   string // vacío si la resolvió el sistema sin actor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fields devuelve la parte mutable de la alerta.
func (a *InventoryAlert) Fields() AlertFields {
	return AlertFields{Message: a.Message, Threshold: a.Threshold, DaysToExpiry: a.DaysToExpiry}
}
