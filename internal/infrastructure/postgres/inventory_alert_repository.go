package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.InventoryAlertRepository = (*InventoryAlertRepo)(nil)

const alertColumns = `id, product_id, alert_type, message, threshold, days_to_expiry,
	is_resolved, resolved_at, resolved_by, created_at, updated_at`

// InventoryAlertRepo almacén de alertas sobre PostgreSQL. La deduplicación la garantiza el
// índice único parcial uq_inventory_alerts_open.
type InventoryAlertRepo struct {
	q Querier
}

// NewInventoryAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAlertRepository(q Querier) *InventoryAlertRepo {
	return &InventoryAlertRepo{q: q}
}

func scanAlert(row scanner) (*entity.InventoryAlert, error) {
	var a entity.InventoryAlert
	err := row.Scan(
		&a.ID, &a.ProductID, &a.Type, &a.Message, &a.Threshold, &a.DaysToExpiry,
		&a.IsResolved, &a.ResolvedAt, &a.ResolvedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertUnresolved inserta la alerta o, si ya hay una abierta para (producto, tipo), la actualiza.
// Dos llamadas concurrentes terminan en la misma fila.
func (r *InventoryAlertRepo) UpsertUnresolved(ctx context.Context, productID string, alertType entity.AlertType, fields entity.AlertFields, now time.Time) (*entity.InventoryAlert, error) {
	query := `
		INSERT INTO inventory_alerts (id, product_id, alert_type, message, threshold, days_to_expiry, is_resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $7)
		ON CONFLICT (product_id, alert_type) WHERE is_resolved = false
		DO UPDATE SET
			message = EXCLUDED.message,
			threshold = EXCLUDED.threshold,
			days_to_expiry = EXCLUDED.days_to_expiry,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + alertColumns
	a, err := scanAlert(r.q.QueryRow(ctx, query,
		uuid.New().String(), productID, string(alertType), fields.Message, fields.Threshold, fields.DaysToExpiry, now,
	))
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("upsert inventory alert: %w", err)
	}
	return a, nil
}

// ResolveAll resuelve las alertas abiertas del producto de los tipos indicados.
func (r *InventoryAlertRepo) ResolveAll(ctx context.Context, productID string, types []entity.AlertType, resolvedBy string, at time.Time) (int, error) {
	if len(types) == 0 {
		return 0, nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_alerts
		SET is_resolved = true, resolved_at = $3, resolved_by = $4, updated_at = $3
		WHERE product_id = $1 AND alert_type = ANY($2) AND is_resolved = false`,
		productID, names, at, resolvedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("resolve inventory alerts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Resolve marca la alerta como resuelta. Si ya lo estaba la devuelve sin cambios.
func (r *InventoryAlertRepo) Resolve(ctx context.Context, id, resolvedBy string, at time.Time) (*entity.InventoryAlert, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	a, err := scanAlert(r.q.QueryRow(ctx, `
		UPDATE inventory_alerts
		SET is_resolved = true, resolved_at = $2, resolved_by = $3, updated_at = $2
		WHERE id = $1 AND is_resolved = false
		RETURNING `+alertColumns,
		id, at, resolvedBy,
	))
	if err == nil {
		return a, nil
	}
	if !noRow(err) {
		return nil, fmt.Errorf("resolve inventory alert: %w", err)
	}
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	return existing, nil
}

// GetByID obtiene una alerta. (nil, nil) si no existe.
func (r *InventoryAlertRepo) GetByID(ctx context.Context, id string) (*entity.InventoryAlert, error) {
	if !validID(id) {
		return nil, nil
	}
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM inventory_alerts WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory alert: %w", err)
	}
	return a, nil
}

// List lista alertas, las más recientes primero.
func (r *InventoryAlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.InventoryAlert, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ProductID != "" {
		if !validID(f.ProductID) {
			return []*entity.InventoryAlert{}, nil
		}
		where = append(where, "product_id = "+arg(f.ProductID))
	}
	if f.Type != "" {
		where = append(where, "alert_type = "+arg(string(f.Type)))
	}
	if f.Resolved != nil {
		where = append(where, "is_resolved = "+arg(*f.Resolved))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + alertColumns + " FROM inventory_alerts")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	sb.WriteString(" LIMIT " + arg(limitArg(f.Limit)) + " OFFSET " + arg(f.Offset))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CountUnresolvedByType cuenta alertas abiertas por tipo.
func (r *InventoryAlertRepo) CountUnresolvedByType(ctx context.Context) (map[entity.AlertType]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT alert_type, COUNT(*) FROM inventory_alerts
		WHERE is_resolved = false GROUP BY alert_type`)
	if err != nil {
		return nil, fmt.Errorf("count inventory alerts: %w", err)
	}
	defer rows.Close()
	counts := make(map[entity.AlertType]int)
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan alert count: %w", err)
		}
		counts[entity.AlertType(t)] = n
	}
	return counts, rows.Err()
}
