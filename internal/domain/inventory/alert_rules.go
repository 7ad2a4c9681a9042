// Package inventory contiene las reglas puras del motor de alertas:
// dado el estado de un producto, qué alerta debe existir y cuáles quedan superadas.
package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// DefaultExpiryWindowDays días antes del vencimiento en que se alerta.
const DefaultExpiryWindowDays = 30

// Decision resultado de evaluar una regla. Upsert vacío significa "no crear nada".
type Decision struct {
	Upsert  entity.AlertType
	Fields  entity.AlertFields
	Resolve []entity.AlertType
}

// None indica que la regla no toca el almacén.
func (d Decision) None() bool {
	return d.Upsert == "" && len(d.Resolve) == 0
}

// StockDecision aplica la regla de existencias.
// Agotado y stock bajo se reemplazan entre sí: al pasar de uno a otro el anterior se resuelve.
func StockDecision(p *entity.Product) Decision {
	threshold := p.ReorderLevel
	switch {
	case p.Quantity == 0:
		return Decision{
			Upsert: entity.AlertOutOfStock,
			Fields: entity.AlertFields{
				Message:   fmt.Sprintf("%s está agotado", p.Name),
				Threshold: &threshold,
			},
			Resolve: []entity.AlertType{entity.AlertLowStock},
		}
	case p.Quantity <= p.ReorderLevel:
		return Decision{
			Upsert: entity.AlertLowStock,
			Fields: entity.AlertFields{
				Message:   fmt.Sprintf("%s tiene stock bajo (actual: %d, punto de reorden: %d)", p.Name, p.Quantity, p.ReorderLevel),
				Threshold: &threshold,
			},
			Resolve: []entity.AlertType{entity.AlertOutOfStock},
		}
	default:
		return Decision{Resolve: entity.StockAlertTypes}
	}
}

// ExpiryDecision aplica la regla de vencimiento. Fuera de la ventana no hace nada:
// las alertas de vencimiento solo se cierran por reemplazo o a mano.
func ExpiryDecision(p *entity.Product, today time.Time, windowDays int) Decision {
	days := p.DaysToExpiry(today)
	if days == nil {
		return Decision{}
	}
	switch {
	case *days < 0:
		return Decision{
			Upsert:  entity.AlertExpired,
			Fields:  entity.AlertFields{Message: fmt.Sprintf("%s está vencido", p.Name)},
			Resolve: []entity.AlertType{entity.AlertExpiring},
		}
	case *days <= windowDays:
		d := *days
		return Decision{
			Upsert: entity.AlertExpiring,
			Fields: entity.AlertFields{
				Message:      fmt.Sprintf("%s vence en %d días", p.Name, d),
				DaysToExpiry: &d,
			},
			Resolve: []entity.AlertType{entity.AlertExpired},
		}
	default:
		return Decision{}
	}
}

// RestockResolves indica si un movimiento repone existencias por encima del punto de reorden,
// caso en que las alertas de stock se cierran aunque la regla general no lo pidiera.
func RestockResolves(p *entity.Product, m *entity.StockMovement) bool {
	return m.Type.Increases() && p.Quantity > p.ReorderLevel
}
