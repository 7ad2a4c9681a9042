package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC)
	store := memory.New()

	for _, p := range []*entity.Product{
		{ID: "a", SKU: "SKU-A", Barcode: "BC-A", Slug: "a", Name: "Arroz", UnitPrice: decimal.NewFromInt(5000), CostPrice: decimal.NewFromInt(3200), ReorderLevel: 8, IsActive: true},
		{ID: "b", SKU: "SKU-B", Barcode: "BC-B", Slug: "b", Name: "Sal", UnitPrice: decimal.NewFromInt(2000), CostPrice: decimal.NewFromInt(1000), ReorderLevel: 5, IsActive: true},
	} {
		require.NoError(t, store.Products().Create(ctx, p))
	}

	record := func(at time.Time, productID string, typ entity.MovementType, qty int, price *decimal.Decimal) {
		t.Helper()
		clock := func() time.Time { return at }
		deriver := inventory.NewAlertDeriver(store, store.Products(), zerolog.Nop(), inventory.WithDeriverClock(clock))
		ledger := inventory.NewLedgerUseCase(store, store.Movements(), deriver, zerolog.Nop(), inventory.WithLedgerClock(clock))
		_, err := ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: productID, Type: string(typ), Quantity: qty, UnitPrice: price})
		require.NoError(t, err)
	}
	costA, costB := decimal.NewFromInt(3200), decimal.NewFromInt(1000)
	record(lastMonth, "a", entity.MovementPurchase, 10, &costA)
	record(now, "b", entity.MovementPurchase, 20, &costB)
	record(now, "a", entity.MovementSale, 3, nil)
	record(now, "b", entity.MovementSale, 5, nil)
	record(now, "b", entity.MovementSale, 1, nil)
	record(now, "a", entity.MovementLoss, 1, nil)

	uc := NewDashboardUseCase(store.Analytics(), store.Alerts())
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Stock.Products)
	assert.Equal(t, 20, out.Stock.Units)
	assert.Equal(t, "33200", out.Stock.CostValue.String())
	assert.Equal(t, "58000", out.Stock.RetailValue.String())

	assert.Equal(t, 20, out.Today.UnitsIn)
	assert.Equal(t, 10, out.Today.UnitsOut)
	assert.Equal(t, "27000", out.Today.SalesRevenue.String())
	require.Len(t, out.Today.ByType, 3)
	assert.Equal(t, "purchase", out.Today.ByType[0].Type)
	assert.Equal(t, "sale", out.Today.ByType[1].Type)
	assert.Equal(t, 3, out.Today.ByType[1].Count)
	assert.Equal(t, 9, out.Today.ByType[1].Units)
	assert.Equal(t, "loss", out.Today.ByType[2].Type)

	// La compra de febrero queda fuera del mes.
	assert.Equal(t, out.Today.UnitsIn, out.Month.UnitsIn)

	require.Len(t, out.TopSold, 2)
	assert.Equal(t, "SKU-B", out.TopSold[0].SKU)
	assert.Equal(t, 6, out.TopSold[0].Units)
	assert.Equal(t, "12000", out.TopSold[0].Revenue.String())
	assert.Equal(t, "SKU-A", out.TopSold[1].SKU)

	assert.Equal(t, 1, out.OpenAlerts["low_stock"])
	assert.Equal(t, 0, out.OpenAlerts["out_of_stock"])
	assert.Contains(t, out.OpenAlerts, "expired")
	assert.Equal(t, "Marzo 2025", out.DateLabel)
}

func TestGetSummary_SinDatos(t *testing.T) {
	store := memory.New()
	uc := NewDashboardUseCase(store.Analytics(), store.Alerts())

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.Stock.Products)
	assert.True(t, out.Stock.CostValue.IsZero())
	assert.Empty(t, out.Today.ByType)
	assert.NotNil(t, out.TopSold)
	assert.Len(t, out.OpenAlerts, 4)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2024", monthLabel(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Enero 2026", monthLabel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}
