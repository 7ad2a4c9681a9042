package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementTotals agregado del libro para un tipo de movimiento en un período.
type MovementTotals struct {
	Type  entity.MovementType
	Count int
	Units int
	Value decimal.Decimal // suma de total_price
}

// StockValuation valorización de la existencia de productos activos.
type StockValuation struct {
	Products    int
	Units       int
	CostValue   decimal.Decimal // quantity × cost_price
	RetailValue decimal.Decimal // quantity × unit_price
}

// TopMover producto con más unidades vendidas en un período.
type TopMover struct {
	ProductID string
	SKU       string
	Name      string
	Units     int
	Revenue   decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el tablero de inventario.
type AnalyticsRepository interface {
	// MovementTotals agrupa por tipo los movimientos con created_at en [from, to].
	// Los tipos sin movimientos no aparecen.
	MovementTotals(ctx context.Context, from, to time.Time) ([]MovementTotals, error)

	StockValuation(ctx context.Context) (StockValuation, error)

	// TopSold devuelve hasta limit productos por unidades vendidas (tipo sale) en [from, to],
	// de mayor a menor; empate por ingreso.
	TopSold(ctx context.Context, from, to time.Time, limit int) ([]TopMover, error)
}
