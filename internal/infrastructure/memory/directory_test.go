package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

func TestCategoryCreate_NombreDuplicadoYPadreInexistente(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Lácteos", Slug: "lacteos", IsActive: true}))

	err := s.Categories().Create(ctx, &entity.Category{ID: "c2", Name: "lácteos", Slug: "lacteos-2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = s.Categories().Create(ctx, &entity.Category{ID: "c3", Name: "Quesos", Slug: "quesos", ParentID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c4", Name: "Quesos", Slug: "quesos", ParentID: "c1", IsActive: true}))
	root := ""
	roots, err := s.Categories().List(ctx, repository.CategoryFilter{ParentID: &root})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "c1", roots[0].ID)
}

func TestProductCreate_ReferenciasDeDirectorio(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := &entity.Product{
		ID: "p1", SKU: "SKU-1", Barcode: "BC-1", Slug: "p-1", Name: "Queso",
		UnitPrice: decimal.NewFromInt(10), CostPrice: decimal.NewFromInt(4), CategoryID: "c1", IsActive: true,
	}
	var ve *domain.ValidationError
	require.ErrorAs(t, s.Products().Create(ctx, p), &ve)
	assert.Equal(t, "category_id", ve.Field)

	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Lácteos", Slug: "lacteos", IsActive: true}))
	require.NoError(t, s.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", Name: "Finca Sol", IsActive: true}))
	p.SupplierID = "s1"
	p.Quantity = 7
	require.NoError(t, s.Products().Create(ctx, p))

	p.SupplierID = "s9"
	require.ErrorAs(t, s.Products().Update(ctx, p), &ve)
	assert.Equal(t, "supplier_id", ve.Field)

	n, err := s.Categories().ProductCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := s.Suppliers().Stats(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Products)
	assert.True(t, decimal.NewFromInt(28).Equal(stats.InventoryValue))

	list, err := s.Products().List(ctx, repository.ProductFilter{SupplierID: "s1", Search: "QUE"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = s.Products().List(ctx, repository.ProductFilter{CategoryID: "otra"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
