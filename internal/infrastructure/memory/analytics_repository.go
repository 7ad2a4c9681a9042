package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository agregados del tablero calculados sobre el estado en memoria.
type AnalyticsRepository struct {
	with access
}

func inPeriod(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (r *AnalyticsRepository) MovementTotals(ctx context.Context, from, to time.Time) ([]repository.MovementTotals, error) {
	var out []repository.MovementTotals
	err := r.with(func(st *state) error {
		byType := make(map[entity.MovementType]*repository.MovementTotals)
		for _, m := range st.movements {
			if !inPeriod(m.CreatedAt, from, to) {
				continue
			}
			t, ok := byType[m.Type]
			if !ok {
				t = &repository.MovementTotals{Type: m.Type, Value: decimal.Zero}
				byType[m.Type] = t
			}
			t.Count++
			t.Units += m.Quantity
			t.Value = t.Value.Add(m.TotalPrice)
		}
		// Orden estable por tipo, como el ORDER BY de PostgreSQL.
		for _, typ := range entity.MovementTypes {
			if t, ok := byType[typ]; ok {
				out = append(out, *t)
			}
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepository) StockValuation(ctx context.Context) (repository.StockValuation, error) {
	v := repository.StockValuation{CostValue: decimal.Zero, RetailValue: decimal.Zero}
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if !p.IsActive {
				continue
			}
			qty := decimal.NewFromInt(int64(p.Quantity))
			v.Products++
			v.Units += p.Quantity
			v.CostValue = v.CostValue.Add(qty.Mul(p.CostPrice))
			v.RetailValue = v.RetailValue.Add(qty.Mul(p.UnitPrice))
		}
		return nil
	})
	return v, err
}

func (r *AnalyticsRepository) TopSold(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMover, error) {
	var out []repository.TopMover
	err := r.with(func(st *state) error {
		byProduct := make(map[string]*repository.TopMover)
		for _, m := range st.movements {
			if m.Type != entity.MovementSale || !inPeriod(m.CreatedAt, from, to) {
				continue
			}
			t, ok := byProduct[m.ProductID]
			if !ok {
				p := st.products[m.ProductID]
				t = &repository.TopMover{ProductID: m.ProductID, SKU: p.SKU, Name: p.Name, Revenue: decimal.Zero}
				byProduct[m.ProductID] = t
			}
			t.Units += m.Quantity
			t.Revenue = t.Revenue.Add(m.TotalPrice)
		}
		for _, t := range byProduct {
			out = append(out, *t)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Units != out[j].Units {
				return out[i].Units > out[j].Units
			}
			if !out[i].Revenue.Equal(out[j].Revenue) {
				return out[i].Revenue.GreaterThan(out[j].Revenue)
			}
			return out[i].SKU < out[j].SKU
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(out, limit, 0), nil
}
