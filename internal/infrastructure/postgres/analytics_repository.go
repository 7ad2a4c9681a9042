package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero de inventario.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// MovementTotals agrupa el libro por tipo de movimiento en el período.
func (r *AnalyticsRepo) MovementTotals(ctx context.Context, from, to time.Time) ([]repository.MovementTotals, error) {
	const query = `
	SELECT
	    movement_type,
	    COUNT(*)                        AS movements,
	    COALESCE(SUM(quantity), 0)      AS units,
	    COALESCE(SUM(total_price), 0)   AS value
	FROM stock_movements
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY movement_type
	ORDER BY array_position(ARRAY['purchase','sale','return','adjustment','transfer','loss']::text[], movement_type)`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.MovementTotals: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementTotals
	for rows.Next() {
		var t repository.MovementTotals
		if err := rows.Scan(&t.Type, &t.Count, &t.Units, &t.Value); err != nil {
			return nil, fmt.Errorf("analytics.MovementTotals scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// StockValuation valoriza la existencia de los productos activos a costo y a precio de venta.
func (r *AnalyticsRepo) StockValuation(ctx context.Context) (repository.StockValuation, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(quantity), 0),
	    COALESCE(SUM(quantity * cost_price), 0),
	    COALESCE(SUM(quantity * unit_price), 0)
	FROM products
	WHERE is_active = true`

	var v repository.StockValuation
	if err := r.q.QueryRow(ctx, query).Scan(&v.Products, &v.Units, &v.CostValue, &v.RetailValue); err != nil {
		return v, fmt.Errorf("analytics.StockValuation: %w", err)
	}
	return v, nil
}

// TopSold productos con más unidades vendidas en el período.
func (r *AnalyticsRepo) TopSold(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMover, error) {
	const query = `
	SELECT
	    p.id,
	    p.sku,
	    p.name,
	    SUM(m.quantity)      AS units,
	    SUM(m.total_price)   AS revenue
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id
	WHERE m.movement_type = 'sale'
	  AND m.created_at BETWEEN $1 AND $2
	GROUP BY p.id, p.sku, p.name
	ORDER BY units DESC, revenue DESC, p.sku
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("analytics.TopSold: %w", err)
	}
	defer rows.Close()

	var out []repository.TopMover
	for rows.Next() {
		var t repository.TopMover
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.Units, &t.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.TopSold scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
