package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Type      string           `json:"type" validate:"required,oneof=purchase sale return adjustment transfer loss"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Reference string           `json:"reference" validate:"max=100"`
	Notes     string           `json:"notes" validate:"max=1000"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       int             `json:"quantity"`
	BeforeQuantity int             `json:"before_quantity"`
	AfterQuantity  int             `json:"after_quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewMovementResponse convierte la entidad.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		BeforeQuantity: m.BeforeQuantity,
		AfterQuantity:  m.AfterQuantity,
		UnitPrice:      m.UnitPrice,
		TotalPrice:     m.TotalPrice,
		Reference:      m.Reference,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int             `json:"current_stock"`
	ReorderLevel       int             `json:"reorder_level"`
	IdealStock         int             `json:"ideal_stock"`          // ReorderLevel * 1.5, redondeado arriba
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock, mínimo 1
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio de costo actual
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	UnitMargin         decimal.Decimal `json:"unit_margin"`          // precio de venta - costo
	Deficit            decimal.Decimal `json:"deficit"`              // 1 = agotado
	Priority           int             `json:"priority"`             // 1 = más urgente
}
