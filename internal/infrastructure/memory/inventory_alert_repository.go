package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.InventoryAlertRepository = (*InventoryAlertRepository)(nil)

// InventoryAlertRepository almacén de alertas en memoria. Como mucho una alerta no resuelta
// por (producto, tipo).
type InventoryAlertRepository struct {
	with access
}

func (r *InventoryAlertRepository) UpsertUnresolved(ctx context.Context, productID string, alertType entity.AlertType, fields entity.AlertFields, now time.Time) (*entity.InventoryAlert, error) {
	var out entity.InventoryAlert
	err := r.with(func(st *state) error {
		for i := range st.alerts {
			a := &st.alerts[i]
			if a.ProductID == productID && a.Type == alertType && !a.IsResolved {
				a.Message = fields.Message
				a.Threshold = fields.Threshold
				a.DaysToExpiry = fields.DaysToExpiry
				a.UpdatedAt = now
				out = *a
				return nil
			}
		}
		out = entity.InventoryAlert{
			ID:           uuid.New().String(),
			ProductID:    productID,
			Type:         alertType,
			Message:      fields.Message,
			Threshold:    fields.Threshold,
			DaysToExpiry: fields.DaysToExpiry,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		st.alerts = append(st.alerts, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InventoryAlertRepository) ResolveAll(ctx context.Context, productID string, types []entity.AlertType, resolvedBy string, at time.Time) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for i := range st.alerts {
			a := &st.alerts[i]
			if a.ProductID != productID || a.IsResolved || !slices.Contains(types, a.Type) {
				continue
			}
			resolve(a, resolvedBy, at)
			n++
		}
		return nil
	})
	return n, err
}

func (r *InventoryAlertRepository) Resolve(ctx context.Context, id, resolvedBy string, at time.Time) (*entity.InventoryAlert, error) {
	var out *entity.InventoryAlert
	err := r.with(func(st *state) error {
		for i := range st.alerts {
			a := &st.alerts[i]
			if a.ID != id {
				continue
			}
			if !a.IsResolved {
				resolve(a, resolvedBy, at)
			}
			c := *a
			out = &c
			return nil
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func resolve(a *entity.InventoryAlert, by string, at time.Time) {
	a.IsResolved = true
	a.ResolvedAt = &at
	a.ResolvedBy = by
	a.UpdatedAt = at
}

func (r *InventoryAlertRepository) GetByID(ctx context.Context, id string) (*entity.InventoryAlert, error) {
	var out *entity.InventoryAlert
	err := r.with(func(st *state) error {
		for i := range st.alerts {
			if st.alerts[i].ID == id {
				a := st.alerts[i]
				out = &a
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *InventoryAlertRepository) List(ctx context.Context, f repository.AlertFilter) ([]*entity.InventoryAlert, error) {
	var list []entity.InventoryAlert
	err := r.with(func(st *state) error {
		for i := len(st.alerts) - 1; i >= 0; i-- {
			a := st.alerts[i]
			if f.ProductID != "" && a.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && a.Type != f.Type {
				continue
			}
			if f.Resolved != nil && a.IsResolved != *f.Resolved {
				continue
			}
			list = append(list, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.InventoryAlert, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

func (r *InventoryAlertRepository) CountUnresolvedByType(ctx context.Context) (map[entity.AlertType]int, error) {
	counts := make(map[entity.AlertType]int)
	err := r.with(func(st *state) error {
		for i := range st.alerts {
			if !st.alerts[i].IsResolved {
				counts[st.alerts[i].Type]++
			}
		}
		return nil
	})
	return counts, err
}
