package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	with access
}

func (r *ProductRepository) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.with(func(st *state) error {
		st.seq++
		n = st.seq
		return nil
	})
	return n, err
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.with(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, o := range st.products {
			if o.SKU == p.SKU || o.Barcode == p.Barcode || o.Slug == p.Slug {
				return domain.ErrDuplicate
			}
		}
		if err := checkDirectory(st, p); err != nil {
			return err
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el Store ya está bloqueado.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.with(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkDirectory(st, p); err != nil {
			return err
		}
		next := *p
		next.Quantity = cur.Quantity
		next.Number = cur.Number
		next.SKU, next.Barcode, next.Slug = cur.SKU, cur.Barcode, cur.Slug
		next.CreatedAt = cur.CreatedAt
		st.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepository) UpdateQuantity(ctx context.Context, id string, expected, quantity int) error {
	return r.with(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.Quantity != expected {
			return domain.ErrConcurrencyConflict
		}
		cur.Quantity = quantity
		st.products[id] = cur
		return nil
	})
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []entity.Product
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if matchProduct(&p, f) {
				list = append(list, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if f.ExpiringBy != nil && !list[i].ExpiryDate.Equal(*list[j].ExpiryDate) {
			return list[i].ExpiryDate.Before(*list[j].ExpiryDate)
		}
		return list[i].Number < list[j].Number
	})
	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.Product, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

// checkDirectory equivale a las claves foráneas de products en PostgreSQL.
func checkDirectory(st *state, p *entity.Product) error {
	if p.CategoryID != "" {
		if _, ok := st.categories[p.CategoryID]; !ok {
			return domain.Invalid("category_id", "no existe")
		}
	}
	if p.SupplierID != "" {
		if _, ok := st.suppliers[p.SupplierID]; !ok {
			return domain.Invalid("supplier_id", "no existe")
		}
	}
	return nil
}

func matchProduct(p *entity.Product, f repository.ProductFilter) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.SupplierID != "" && p.SupplierID != f.SupplierID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) &&
			!strings.Contains(strings.ToLower(p.Barcode), q) {
			return false
		}
	}
	switch f.StockStatus {
	case entity.StockStatusOut:
		if p.Quantity != 0 {
			return false
		}
	case entity.StockStatusLow:
		if p.Quantity == 0 || p.Quantity > p.ReorderLevel {
			return false
		}
	case repository.StockStatusReorder:
		if p.Quantity > p.ReorderLevel {
			return false
		}
	}
	if f.ExpiringBy != nil {
		if p.ExpiryDate == nil {
			return false
		}
		exp := entity.DateOnly(*p.ExpiryDate)
		if exp.Before(entity.DateOnly(f.Today)) || exp.After(entity.DateOnly(*f.ExpiringBy)) {
			return false
		}
	}
	return true
}
