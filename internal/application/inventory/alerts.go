package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// AlertUseCase consultas y resolución manual de alertas.
type AlertUseCase struct {
	repo repository.InventoryAlertRepository
	now  func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.InventoryAlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo, now: time.Now}
}

// Resolve marca la alerta como resuelta por actor. Resolver una alerta ya resuelta no cambia nada.
func (uc *AlertUseCase) Resolve(ctx context.Context, id, actor string) (*entity.InventoryAlert, error) {
	if id == "" {
		return nil, domain.Invalid("id", "es requerido")
	}
	return uc.repo.Resolve(ctx, id, actor, uc.now())
}

// Get obtiene una alerta por ID.
func (uc *AlertUseCase) Get(ctx context.Context, id string) (*entity.InventoryAlert, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// AlertQuery filtros del listado.
type AlertQuery struct {
	ProductID string
	Type      string
	Resolved  *bool
	Limit     int
	Offset    int
}

// List lista alertas, las más recientes primero.
func (uc *AlertUseCase) List(ctx context.Context, q AlertQuery) ([]*entity.InventoryAlert, error) {
	filter := repository.AlertFilter{
		ProductID: q.ProductID,
		Resolved:  q.Resolved,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.Type != "" {
		t, err := entity.ParseAlertType(q.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = t
	}
	if filter.Limit <= 0 {
		filter.Limit = 25
	}
	return uc.repo.List(ctx, filter)
}

// Summary cuenta alertas abiertas por tipo; los tipos sin alertas aparecen en cero.
func (uc *AlertUseCase) Summary(ctx context.Context) (map[entity.AlertType]int, error) {
	counts, err := uc.repo.CountUnresolvedByType(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[entity.AlertType]int, 4)
	for _, t := range append(append([]entity.AlertType{}, entity.StockAlertTypes...), entity.ExpiryAlertTypes...) {
		out[t] = counts[t]
	}
	return out, nil
}
