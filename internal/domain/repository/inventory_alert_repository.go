package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// AlertFilter filtros del listado de alertas (más recientes primero).
type AlertFilter struct {
	ProductID string
	Type      entity.AlertType
	Resolved  *bool
	Limit     int
	Offset    int
}

// InventoryAlertRepository puerto del almacén de alertas.
// La clave de deduplicación es (product_id, alert_type) entre las no resueltas.
type InventoryAlertRepository interface {
	// UpsertUnresolved actualiza la alerta no resuelta de la clave o crea una nueva, de forma atómica.
	UpsertUnresolved(ctx context.Context, productID string, alertType entity.AlertType, fields entity.AlertFields, now time.Time) (*entity.InventoryAlert, error)
	// ResolveAll resuelve las alertas no resueltas de los tipos indicados y devuelve cuántas cambió.
	ResolveAll(ctx context.Context, productID string, types []entity.AlertType, resolvedBy string, at time.Time) (int, error)
	// Resolve marca una alerta como resuelta si aún no lo está. ErrNotFound si no existe.
	Resolve(ctx context.Context, id, resolvedBy string, at time.Time) (*entity.InventoryAlert, error)
	GetByID(ctx context.Context, id string) (*entity.InventoryAlert, error)
	List(ctx context.Context, filter AlertFilter) ([]*entity.InventoryAlert, error)
	CountUnresolvedByType(ctx context.Context) (map[entity.AlertType]int, error)
}
