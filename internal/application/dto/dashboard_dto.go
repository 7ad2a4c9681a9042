package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO tablero de inventario: valorización, flujo del día y del mes, productos
// más vendidos del mes y alertas abiertas.
type DashboardSummaryDTO struct {
	Stock      StockValuationDTO `json:"stock"`
	Today      PeriodFlowDTO     `json:"today"`
	Month      PeriodFlowDTO     `json:"month"`
	TopSold    []TopMoverDTO     `json:"top_sold"`
	OpenAlerts map[string]int    `json:"open_alerts"`
	DateLabel  string            `json:"date_label"` // ej: "Marzo 2025"
}

// StockValuationDTO existencia de productos activos valorizada.
type StockValuationDTO struct {
	Products    int             `json:"products"`
	Units       int             `json:"units"`
	CostValue   decimal.Decimal `json:"cost_value"`
	RetailValue decimal.Decimal `json:"retail_value"`
}

// PeriodFlowDTO entradas y salidas del libro en un período.
type PeriodFlowDTO struct {
	UnitsIn      int                 `json:"units_in"`
	UnitsOut     int                 `json:"units_out"`
	SalesRevenue decimal.Decimal     `json:"sales_revenue"`
	ByType       []MovementTotalsDTO `json:"by_type"`
}

// MovementTotalsDTO agregado por tipo de movimiento.
type MovementTotalsDTO struct {
	Type  string          `json:"type"`
	Count int             `json:"count"`
	Units int             `json:"units"`
	Value decimal.Decimal `json:"value"`
}

// TopMoverDTO producto con más unidades vendidas.
type TopMoverDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}
