package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, parent_id, name, slug, description, is_active, created_at, updated_at`

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row scanner) (*entity.Category, error) {
	var (
		c      entity.Category
		parent *string
	)
	if err := row.Scan(&c.ID, &parent, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if parent != nil {
		c.ParentID = *parent
	}
	return &c, nil
}

func categoryWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.Invalid("parent_id", "no existe")
	case isCheckViolation(err):
		return domain.Invalid("parent_id", "una categoría no puede ser su propio padre")
	}
	return fmt.Errorf("%s category: %w", op, err)
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if c.ParentID != "" && !validID(c.ParentID) {
		return domain.Invalid("parent_id", "no existe")
	}
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullID(c.ParentID), c.Name, c.Slug, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return categoryWriteError("insert", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Update persiste nombre, slug, padre, descripción y estado.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	if c.ParentID != "" && !validID(c.ParentID) {
		return domain.Invalid("parent_id", "no existe")
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE categories SET
			parent_id = $2, name = $3, slug = $4, description = $5, is_active = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, nullID(c.ParentID), c.Name, c.Slug, c.Description, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return categoryWriteError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ActiveOnly {
		where = append(where, "is_active")
	}
	if f.ParentID != nil {
		switch {
		case *f.ParentID == "":
			where = append(where, "parent_id IS NULL")
		case !validID(*f.ParentID):
			return []*entity.Category{}, nil
		default:
			where = append(where, "parent_id = "+arg(*f.ParentID))
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + categoryColumns + " FROM categories")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY name LIMIT " + arg(limitArg(f.Limit)) + " OFFSET " + arg(f.Offset))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ProductCount cuenta los productos activos de la categoría.
func (r *CategoryRepo) ProductCount(ctx context.Context, id string) (int, error) {
	if !validID(id) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1 AND is_active`, id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return n, nil
}
