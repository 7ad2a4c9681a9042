package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type fixture struct {
	store   *memory.Store
	deriver *inventory.AlertDeriver
	ledger  *inventory.LedgerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	deriver := inventory.NewAlertDeriver(store, store.Products(), zerolog.Nop(), inventory.WithDeriverClock(clock))
	ledger := inventory.NewLedgerUseCase(store, store.Movements(), deriver, zerolog.Nop(), inventory.WithLedgerClock(clock))
	return &fixture{store: store, deriver: deriver, ledger: ledger}
}

func (f *fixture) seed(t *testing.T, id string, qty, reorder int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Barcode:      "BC-" + id,
		Slug:         "producto-" + id,
		Name:         "Producto " + id,
		UnitPrice:    decimal.NewFromInt(5000),
		CostPrice:    decimal.NewFromInt(3200),
		Quantity:     qty,
		ReorderLevel: reorder,
		IsActive:     true,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

// expires guarda la fecha de vencimiento; el derivador lee la fila almacenada.
func (f *fixture) expires(t *testing.T, p *entity.Product, days int) {
	t.Helper()
	exp := entity.DateOnly(testNow).AddDate(0, 0, days)
	p.ExpiryDate = &exp
	require.NoError(t, f.store.Products().Update(context.Background(), p))
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *fixture) unresolved(t *testing.T, productID string) map[entity.AlertType]*entity.InventoryAlert {
	t.Helper()
	open := false
	list, err := f.store.Alerts().List(context.Background(), repository.AlertFilter{ProductID: productID, Resolved: &open})
	require.NoError(t, err)
	out := make(map[entity.AlertType]*entity.InventoryAlert, len(list))
	for _, a := range list {
		require.NotContains(t, out, a.Type, "más de una alerta abierta para la misma clave")
		out[a.Type] = a
	}
	return out
}
