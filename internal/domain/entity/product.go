package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Estados de stock calculados a partir de Quantity y ReorderLevel.
const (
	StockStatusOut = "out_of_stock"
	StockStatusLow = "low_stock"
	StockStatusIn  = "in_stock"
)

// DefaultReorderLevel se aplica cuando el catálogo no indica punto de reorden.
const DefaultReorderLevel = 5

// Product representa un producto del catálogo.
// Quantity es la existencia autoritativa; solo el libro de movimientos la modifica.
type Product struct {
	ID              string
	Number          int64  // correlativo usado para derivar SKU y código de barras
	SKU             string // único
	Barcode         string // único
	Slug            string // único, derivado del nombre
	Name            string
	Description     string
	CategoryID      string
	SupplierID      string
	UnitPrice       decimal.Decimal // precio de venta
	CostPrice       decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje 0..100
	Quantity        int
	ReorderLevel    int
	ManufactureDate *time.Time
	ExpiryDate      *time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var hundred = decimal.NewFromInt(100)

// Validate verifica los invariantes del catálogo. No toca Quantity salvo para rechazar negativos.
func (p *Product) Validate() error {
	if p.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	if p.CostPrice.IsNegative() {
		return domain.Invalid("cost_price", "no puede ser negativo")
	}
	if p.UnitPrice.LessThan(p.CostPrice) {
		return domain.Invalid("unit_price", "no puede ser menor que el costo")
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(hundred) {
		return domain.Invalid("tax_rate", "debe estar entre 0 y 100")
	}
	if p.Quantity < 0 {
		return domain.Invalid("quantity", "no puede ser negativa")
	}
	if p.ReorderLevel < 0 {
		return domain.Invalid("reorder_level", "no puede ser negativo")
	}
	if p.ManufactureDate != nil && p.ExpiryDate != nil && p.ExpiryDate.Before(*p.ManufactureDate) {
		return domain.Invalid("expiry_date", "no puede ser anterior a la fecha de fabricación")
	}
	return nil
}

// StockStatus clasifica la existencia actual.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StockStatusOut
	case p.Quantity <= p.ReorderLevel:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// TotalValue valoriza la existencia al costo.
func (p *Product) TotalValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// DaysToExpiry devuelve nil si el producto no vence.
func (p *Product) DaysToExpiry(today time.Time) *int {
	if p.ExpiryDate == nil {
		return nil
	}
	d := DaysBetween(today, *p.ExpiryDate)
	return &d
}

// DateOnly normaliza t a la medianoche UTC de su fecha calendario.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween cuenta días calendario de from a to (negativo si to es anterior).
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
