package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, id string, qty int) {
	t.Helper()
	err := s.Products().Create(context.Background(), &entity.Product{
		ID: id, SKU: "SKU-" + id, Barcode: "BC-" + id, Slug: "p-" + id, Name: "P " + id,
		UnitPrice: decimal.NewFromInt(10), CostPrice: decimal.NewFromInt(5),
		Quantity: qty, ReorderLevel: 5, IsActive: true,
	})
	require.NoError(t, err)
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	s := New()
	seedProduct(t, s, "p1", 10)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, _ repository.InventoryAlertRepository) error {
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1"}))
		require.NoError(t, productRepo.UpdateQuantity(ctx, "p1", 10, 3))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
	m, err := s.Movements().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	s := New()
	seedProduct(t, s, "p1", 10)
	ctx := context.Background()

	err := s.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, _ repository.InventoryAlertRepository) error {
		if err := movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1"}); err != nil {
			return err
		}
		return productRepo.UpdateQuantity(ctx, "p1", 10, 3)
	})
	require.NoError(t, err)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 3, p.Quantity)
	m, _ := s.Movements().GetByID(ctx, "m1")
	require.NotNil(t, m)
}

func TestUpdateQuantity_ValorEsperadoDistinto(t *testing.T) {
	s := New()
	seedProduct(t, s, "p1", 10)
	err := s.Products().UpdateQuantity(context.Background(), "p1", 9, 4)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

func TestProductUpdate_NoTocaExistencia(t *testing.T) {
	s := New()
	seedProduct(t, s, "p1", 10)
	ctx := context.Background()
	p, _ := s.Products().GetByID(ctx, "p1")
	p.Quantity = 999
	p.Name = "Nuevo"
	require.NoError(t, s.Products().Update(ctx, p))

	got, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, "Nuevo", got.Name)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	s := New()
	seedProduct(t, s, "p1", 0)
	err := s.Products().Create(context.Background(), &entity.Product{ID: "p2", SKU: "SKU-p1", Barcode: "x", Slug: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpsertUnresolved_UnaAlertaPorClave(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Alerts()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	five := 5

	a1, err := repo.UpsertUnresolved(ctx, "p1", entity.AlertLowStock, entity.AlertFields{Message: "uno", Threshold: &five}, now)
	require.NoError(t, err)
	a2, err := repo.UpsertUnresolved(ctx, "p1", entity.AlertLowStock, entity.AlertFields{Message: "dos", Threshold: &five}, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, a1.ID, a2.ID)
	assert.Equal(t, "dos", a2.Message)
	assert.Equal(t, now, a2.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), a2.UpdatedAt)

	counts, err := repo.CountUnresolvedByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[entity.AlertLowStock])
}

func TestUpsertUnresolved_TrasResolverCreaNueva(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Alerts()
	now := time.Now()

	a1, err := repo.UpsertUnresolved(ctx, "p1", entity.AlertExpired, entity.AlertFields{Message: "vencido"}, now)
	require.NoError(t, err)
	n, err := repo.ResolveAll(ctx, "p1", entity.ExpiryAlertTypes, "u1", now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	a2, err := repo.UpsertUnresolved(ctx, "p1", entity.AlertExpired, entity.AlertFields{Message: "vencido"}, now)
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)

	resolved := true
	list, err := repo.List(ctx, repository.AlertFilter{ProductID: "p1", Resolved: &resolved})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].ResolvedBy)
}

func TestResolve_IdempotenteYNoEncontrada(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Alerts()
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	a, err := repo.UpsertUnresolved(ctx, "p1", entity.AlertOutOfStock, entity.AlertFields{Message: "agotado"}, t0)
	require.NoError(t, err)

	first, err := repo.Resolve(ctx, a.ID, "u1", t0.Add(time.Hour))
	require.NoError(t, err)
	second, err := repo.Resolve(ctx, a.ID, "u2", t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u1", second.ResolvedBy)
	assert.Equal(t, *first.ResolvedAt, *second.ResolvedAt)

	_, err = repo.Resolve(ctx, "nope", "u1", t0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_FiltrosDeStockYVencimiento(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedProduct(t, s, "agotado", 0)
	seedProduct(t, s, "bajo", 3)
	seedProduct(t, s, "ok", 50)

	out, err := s.Products().List(ctx, repository.ProductFilter{StockStatus: entity.StockStatusOut})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "agotado", out[0].ID)

	low, err := s.Products().List(ctx, repository.ProductFilter{StockStatus: entity.StockStatusLow})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "bajo", low[0].ID)

	reorder, err := s.Products().List(ctx, repository.ProductFilter{StockStatus: repository.StockStatusReorder})
	require.NoError(t, err)
	assert.Len(t, reorder, 2)

	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p, _ := s.Products().GetByID(ctx, "ok")
	exp := today.AddDate(0, 0, 10)
	p.ExpiryDate = &exp
	require.NoError(t, s.Products().Update(ctx, p))

	until := today.AddDate(0, 0, 30)
	expiring, err := s.Products().List(ctx, repository.ProductFilter{ExpiringBy: &until, Today: today})
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "ok", expiring[0].ID)

	until = today.AddDate(0, 0, 5)
	expiring, err = s.Products().List(ctx, repository.ProductFilter{ExpiringBy: &until, Today: today})
	require.NoError(t, err)
	assert.Empty(t, expiring)
}
