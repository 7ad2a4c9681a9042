package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, number, sku, barcode, slug, name, description, category_id, supplier_id,
	unit_price, cost_price, tax_rate, quantity, reorder_level, manufacture_date, expiry_date,
	is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p                    entity.Product
		categoryID, supplier *string
	)
	err := row.Scan(
		&p.ID, &p.Number, &p.SKU, &p.Barcode, &p.Slug, &p.Name, &p.Description, &categoryID, &supplier,
		&p.UnitPrice, &p.CostPrice, &p.TaxRate, &p.Quantity, &p.ReorderLevel, &p.ManufactureDate, &p.ExpiryDate,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if supplier != nil {
		p.SupplierID = *supplier
	}
	return &p, nil
}

// directoryError traduce la violación de clave foránea de categoría o proveedor.
func directoryError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "supplier") {
		return domain.Invalid("supplier_id", "no existe")
	}
	return domain.Invalid("category_id", "no existe")
}

// NextNumber toma el siguiente valor del correlativo de productos.
func (r *ProductRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('product_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next product number: %w", err)
	}
	return n, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Number, p.SKU, p.Barcode, p.Slug, p.Name, p.Description, nullID(p.CategoryID), nullID(p.SupplierID),
		p.UnitPrice, p.CostPrice, p.TaxRate, p.Quantity, p.ReorderLevel, p.ManufactureDate, p.ExpiryDate,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return directoryError(err)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update persiste los datos de catálogo. No escribe quantity ni los identificadores derivados.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, category_id = $4, supplier_id = $5,
			unit_price = $6, cost_price = $7, tax_rate = $8, reorder_level = $9,
			manufacture_date = $10, expiry_date = $11, is_active = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, nullID(p.CategoryID), nullID(p.SupplierID),
		p.UnitPrice, p.CostPrice, p.TaxRate, p.ReorderLevel,
		p.ManufactureDate, p.ExpiryDate, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return directoryError(err)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe la existencia solo si la almacenada sigue siendo expected.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, expected, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $3, updated_at = now() WHERE id = $1 AND quantity = $2`,
		id, expected, quantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// List lista productos según el filtro. Por defecto ordena por correlativo;
// con ExpiringBy, por fecha de vencimiento.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
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
	for _, ref := range []struct{ column, id string }{{"category_id", f.CategoryID}, {"supplier_id", f.SupplierID}} {
		if ref.id == "" {
			continue
		}
		if !validID(ref.id) {
			return []*entity.Product{}, nil
		}
		where = append(where, ref.column+" = "+arg(ref.id))
	}
	if f.Search != "" {
		pat := arg(likePattern(f.Search))
		where = append(where, "(name ILIKE "+pat+" OR sku ILIKE "+pat+" OR barcode ILIKE "+pat+")")
	}
	switch f.StockStatus {
	case entity.StockStatusOut:
		where = append(where, "quantity = 0")
	case entity.StockStatusLow:
		where = append(where, "quantity > 0 AND quantity <= reorder_level")
	case repository.StockStatusReorder:
		where = append(where, "quantity <= reorder_level")
	}
	order := "number"
	if f.ExpiringBy != nil {
		where = append(where, "expiry_date BETWEEN "+arg(entity.DateOnly(f.Today))+" AND "+arg(entity.DateOnly(*f.ExpiringBy)))
		order = "expiry_date, number"
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + productColumns + " FROM products")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY " + order)
	sb.WriteString(" LIMIT " + arg(limitArg(f.Limit)) + " OFFSET " + arg(f.Offset))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
