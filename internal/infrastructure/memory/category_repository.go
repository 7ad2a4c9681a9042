package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository categorías en memoria. Nombre (sin mayúsculas) y slug son únicos.
type CategoryRepository struct {
	with access
}

func categoryClash(st *state, c *entity.Category) bool {
	for _, o := range st.categories {
		if o.ID != c.ID && (strings.EqualFold(o.Name, c.Name) || o.Slug == c.Slug) {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	return r.with(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok || categoryClash(st, c) {
			return domain.ErrDuplicate
		}
		if c.ParentID != "" {
			if _, ok := st.categories[c.ParentID]; !ok {
				return domain.Invalid("parent_id", "no existe")
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.with(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	return r.with(func(st *state) error {
		cur, ok := st.categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if categoryClash(st, c) {
			return domain.ErrDuplicate
		}
		if c.ParentID != "" {
			if _, ok := st.categories[c.ParentID]; !ok {
				return domain.Invalid("parent_id", "no existe")
			}
		}
		next := *c
		next.CreatedAt = cur.CreatedAt
		st.categories[c.ID] = next
		return nil
	})
}

func (r *CategoryRepository) List(ctx context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	var list []entity.Category
	err := r.with(func(st *state) error {
		for _, c := range st.categories {
			if f.ActiveOnly && !c.IsActive {
				continue
			}
			if f.ParentID != nil && c.ParentID != *f.ParentID {
				continue
			}
			list = append(list, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.Category, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

func (r *CategoryRepository) ProductCount(ctx context.Context, id string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if p.IsActive && p.CategoryID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}
