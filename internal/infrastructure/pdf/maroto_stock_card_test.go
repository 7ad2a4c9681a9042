package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"19200.4": "19.200",
		"-1500":   "-1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateStockCard(t *testing.T) {
	exp := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	p := &entity.Product{
		ID: "p1", SKU: "SKU-0001", Barcode: "BC-00000001", Name: "Café Molido",
		UnitPrice: decimal.NewFromInt(5000), CostPrice: decimal.NewFromInt(3200),
		Quantity: 6, ReorderLevel: 5, ExpiryDate: &exp,
	}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	movs := []*entity.StockMovement{
		{ID: "m1", Type: entity.MovementPurchase, Quantity: 10, BeforeQuantity: 0, AfterQuantity: 10,
			UnitPrice: decimal.NewFromInt(3200), TotalPrice: decimal.NewFromInt(32000), Reference: "saldo-inicial", CreatedAt: now},
		{ID: "m2", Type: entity.MovementSale, Quantity: 4, BeforeQuantity: 10, AfterQuantity: 6,
			UnitPrice: decimal.NewFromInt(5000), TotalPrice: decimal.NewFromInt(20000), CreatedAt: now.Add(time.Hour)},
	}
	g := &StockCardGenerator{now: func() time.Time { return now }}

	doc, err := g.GenerateStockCard(context.Background(), p, movs)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	empty, err := g.GenerateStockCard(context.Background(), p, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
