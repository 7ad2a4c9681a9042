package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// AlertResponse salida de una alerta de inventario.
type AlertResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	Type         string     `json:"type"`
	Message      string     `json:"message"`
	Threshold    *int       `json:"threshold"`
	DaysToExpiry *int       `json:"days_to_expiry"`
	IsResolved   bool       `json:"is_resolved"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy   string     `json:"resolved_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// NewAlertResponse convierte la entidad.
func NewAlertResponse(a *entity.InventoryAlert) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		ProductID:    a.ProductID,
		Type:         string(a.Type),
		Message:      a.Message,
		Threshold:    a.Threshold,
		DaysToExpiry: a.DaysToExpiry,
		IsResolved:   a.IsResolved,
		ResolvedAt:   a.ResolvedAt,
		ResolvedBy:   a.ResolvedBy,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AlertSummaryResponse alertas abiertas por tipo.
type AlertSummaryResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
