package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type captureGenerator struct {
	product   *entity.Product
	movements []*entity.StockMovement
}

func (g *captureGenerator) GenerateStockCard(_ context.Context, p *entity.Product, m []*entity.StockMovement) ([]byte, error) {
	g.product, g.movements = p, m
	return []byte("%PDF"), nil
}

func TestStockCard_MovimientosEnOrdenCronologico(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 5)
	ctx := context.Background()
	for _, typ := range []string{"purchase", "sale", "return"} {
		_, err := f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: typ, Quantity: 2})
		require.NoError(t, err)
	}
	gen := &captureGenerator{}
	uc := inventory.NewStockCardUseCase(f.store.Products(), f.store.Movements(), gen)

	doc, err := uc.Generate(ctx, "p1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), doc)
	require.Len(t, gen.movements, 3)
	assert.Equal(t, entity.MovementPurchase, gen.movements[0].Type)
	assert.Equal(t, entity.MovementReturn, gen.movements[2].Type)
	assert.Equal(t, 12, gen.product.Quantity)

	_, err = uc.Generate(ctx, "nope", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
