package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// SupplierRepository proveedores en memoria. El nombre es único sin distinguir mayúsculas.
type SupplierRepository struct {
	with access
}

func supplierClash(st *state, s *entity.Supplier) bool {
	for _, o := range st.suppliers {
		if o.ID != s.ID && strings.EqualFold(o.Name, s.Name) {
			return true
		}
	}
	return false
}

func (r *SupplierRepository) Create(ctx context.Context, s *entity.Supplier) error {
	return r.with(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok || supplierClash(st, s) {
			return domain.ErrDuplicate
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.with(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepository) Update(ctx context.Context, s *entity.Supplier) error {
	return r.with(func(st *state) error {
		cur, ok := st.suppliers[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if supplierClash(st, s) {
			return domain.ErrDuplicate
		}
		next := *s
		next.CreatedAt = cur.CreatedAt
		st.suppliers[s.ID] = next
		return nil
	})
}

func (r *SupplierRepository) List(ctx context.Context, f repository.SupplierFilter) ([]*entity.Supplier, error) {
	search := strings.ToLower(f.Search)
	var list []entity.Supplier
	err := r.with(func(st *state) error {
		for _, s := range st.suppliers {
			if f.ActiveOnly && !s.IsActive {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(s.Name), search) &&
				!strings.Contains(strings.ToLower(s.ContactPerson), search) {
				continue
			}
			list = append(list, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.Supplier, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

func (r *SupplierRepository) Stats(ctx context.Context, id string) (repository.SupplierStats, error) {
	stats := repository.SupplierStats{InventoryValue: decimal.Zero}
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if !p.IsActive || p.SupplierID != id {
				continue
			}
			stats.Products++
			stats.InventoryValue = stats.InventoryValue.Add(p.TotalValue())
		}
		return nil
	})
	return stats, err
}
