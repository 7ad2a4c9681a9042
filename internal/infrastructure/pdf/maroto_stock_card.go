// Package pdf genera el kardex (tarjeta de existencias) de un producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + SKU         │  KARDEX + Fecha de emisión   │
//	│  RESUMEN: Existencia / Reorden / Valor / Vencimiento         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Ref. | Entrada | Salida | Saldo | ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código de barras del producto                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 20, Blue: 20}
)

var movementLabels = map[entity.MovementType]string{
	entity.MovementPurchase:   "Compra",
	entity.MovementSale:       "Venta",
	entity.MovementReturn:     "Devolución",
	entity.MovementAdjustment: "Ajuste",
	entity.MovementTransfer:   "Traslado",
	entity.MovementLoss:       "Pérdida",
}

var _ inventory.StockCardGenerator = (*StockCardGenerator)(nil)

// StockCardGenerator implementa inventory.StockCardGenerator usando Maroto v2.
type StockCardGenerator struct {
	now func() time.Time
}

// NewStockCardGenerator construye el generador.
func NewStockCardGenerator() *StockCardGenerator {
	return &StockCardGenerator{now: time.Now}
}

// GenerateStockCard genera el PDF. movements debe venir en orden cronológico.
func (g *StockCardGenerator) GenerateStockCard(_ context.Context, product *entity.Product, movements []*entity.StockMovement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+product.SKU, true).
		Build()

	m := maroto.New(cfg)
	now := g.now()

	m.AddRows(headerRow(product, now))
	m.AddRows(summaryRow(product, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(movementRows(movements)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if product.Barcode != "" {
		m.AddRows(row.New(18).Add(
			col.New(4).Add(code.NewBar(product.Barcode, props.Barcode{Percent: 90, Center: true})),
			col.New(8).Add(text.New(product.Barcode, props.Text{Size: 8, Top: 7, Left: 3, Color: colorGray})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(p *entity.Product, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("SKU: "+p.SKU, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("KARDEX", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func summaryRow(p *entity.Product, now time.Time) core.Row {
	expiry := "—"
	expiryColor := colorGray
	if days := p.DaysToExpiry(now); days != nil {
		expiry = p.ExpiryDate.Format("02/01/2006")
		if *days < 0 {
			expiry += " (vencido)"
			expiryColor = colorDanger
		}
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 6, Color: c}),
		)
	}
	stockColor := colorGray
	if p.StockStatus() != entity.StockStatusIn {
		stockColor = colorDanger
	}
	return row.New(14).Add(
		cell("EXISTENCIA", strconv.Itoa(p.Quantity), stockColor),
		cell("PUNTO DE REORDEN", strconv.Itoa(p.ReorderLevel), colorGray),
		cell("VALOR AL COSTO", "$"+formatMoney(p.TotalValue()), colorGray),
		cell("VENCIMIENTO", expiry, expiryColor),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Referencia", 2, align.Left),
		h("Entrada", 1, align.Right),
		h("Salida", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("P. Unit.", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

func movementRows(movements []*entity.StockMovement) []core.Row {
	rows := make([]core.Row, 0, len(movements))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, mv := range movements {
		in, out := "", ""
		if mv.Type.Increases() {
			in = strconv.Itoa(mv.Quantity)
		} else {
			out = strconv.Itoa(mv.Quantity)
		}
		label, ok := movementLabels[mv.Type]
		if !ok {
			label = string(mv.Type)
		}
		rows = append(rows, row.New(6).Add(
			cell(mv.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
			cell(label, 2, align.Left),
			cell(mv.Reference, 2, align.Left),
			cell(in, 1, align.Right),
			cell(out, 1, align.Right),
			cell(strconv.Itoa(mv.AfterQuantity), 1, align.Right),
			cell("$"+formatMoney(mv.UnitPrice), 1, align.Right),
			cell("$"+formatMoney(mv.TotalPrice), 2, align.Right),
		))
	}
	return rows
}

// formatMoney redondea a pesos e inserta puntos de miles. Ej: 1000000 → "1.000.000".
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	n := len(s)
	buf := make([]byte, 0, n+n/3+1)
	if d.Round(0).IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
