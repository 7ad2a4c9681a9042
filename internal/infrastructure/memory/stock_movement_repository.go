package memory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository libro de movimientos en memoria. Solo inserción.
type StockMovementRepository struct {
	with access
}

func (r *StockMovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.with(func(st *state) error {
		for i := range st.movements {
			if st.movements[i].ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepository) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.with(func(st *state) error {
		for i := range st.movements {
			if st.movements[i].ID == id {
				m := st.movements[i]
				out = &m
				break
			}
		}
		return nil
	})
	return out, err
}

// List recorre el libro del final al principio: los más recientes primero.
func (r *StockMovementRepository) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var list []entity.StockMovement
	err := r.with(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			list = append(list, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.StockMovement, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}
