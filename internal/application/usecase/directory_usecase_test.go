package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

func TestCategoryUpdate_RechazaCiclos(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.New().Categories(), zerolog.Nop())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Despensa"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Granos", ParentID: a.ID})
	require.NoError(t, err)
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Arroz", ParentID: b.ID})
	require.NoError(t, err)

	_, err = uc.Update(ctx, a.ID, dto.UpdateCategoryRequest{ParentID: &c.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, a.ID, dto.UpdateCategoryRequest{ParentID: &a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Mover una hoja a la raíz y renombrarla recalcula el slug.
	name := "Arroz Integral"
	out, err := uc.Update(ctx, c.ID, dto.UpdateCategoryRequest{Name: &name, ClearParent: true})
	require.NoError(t, err)
	assert.Empty(t, out.ParentID)
	assert.Equal(t, "arroz-integral", out.Slug)
}

func TestCategoryDeactivate_OcultaDelListado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.New().Categories(), zerolog.Nop())
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Aseo"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, a.ID))
	require.NoError(t, uc.Deactivate(ctx, a.ID))
	list, err := uc.List(ctx, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	assert.ErrorIs(t, uc.Deactivate(ctx, "nope"), domain.ErrNotFound)
}

func TestSupplierGetByID_TotalesDeProductosActivos(t *testing.T) {
	e := newEnv()
	suppliers := usecase.NewSupplierUseCase(e.store.Suppliers(), zerolog.Nop())
	ctx := context.Background()

	s, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Molinos del Sur", Email: "ventas@molinos.co"})
	require.NoError(t, err)

	for _, qty := range []int{10, 5} {
		in := req("Harina")
		in.SupplierID = s.ID
		in.InitialQuantity = qty
		_, err := e.products.Create(ctx, "u1", in)
		require.NoError(t, err)
	}
	inactive := false
	in := req("Sémola")
	in.SupplierID = s.ID
	in.InitialQuantity = 3
	p, err := e.products.Create(ctx, "u1", in)
	require.NoError(t, err)
	_, err = e.products.Update(ctx, "u1", p.ID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)

	detail, err := suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.TotalProductsSupplied)
	assert.Equal(t, "48000", detail.TotalInventoryValue.String())

	_, err = suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "molinos del sur"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
