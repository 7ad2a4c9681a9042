package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

func TestRecordMovement_SignoPorTipo(t *testing.T) {
	cases := []struct {
		typ  string
		want int
	}{
		{"purchase", 23},
		{"return", 23},
		{"sale", 17},
		{"loss", 17},
		{"adjustment", 17},
		{"transfer", 17},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, "p1", 20, 5)

			mov, err := f.ledger.RecordMovement(context.Background(), inventory.MovementInput{
				ProductID: "p1", Type: tc.typ, Quantity: 3, Actor: "u1",
			})
			require.NoError(t, err)
			assert.Equal(t, 20, mov.BeforeQuantity)
			assert.Equal(t, tc.want, mov.AfterQuantity)
			assert.Equal(t, 3, mov.Quantity)
			assert.Equal(t, "u1", mov.CreatedBy)
			assert.Equal(t, tc.want, f.quantity(t, "p1"))
		})
	}
}

func TestRecordMovement_PrecioPorDefectoYTotal(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 20, 5)

	mov, err := f.ledger.RecordMovement(context.Background(), inventory.MovementInput{ProductID: "p1", Type: "sale", Quantity: 4})
	require.NoError(t, err)
	assert.True(t, mov.UnitPrice.Equal(decimal.NewFromInt(5000)))
	assert.True(t, mov.TotalPrice.Equal(decimal.NewFromInt(20000)))

	price := decimal.NewFromInt(3000)
	mov, err = f.ledger.RecordMovement(context.Background(), inventory.MovementInput{ProductID: "p1", Type: "purchase", Quantity: 2, UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, mov.TotalPrice.Equal(decimal.NewFromInt(6000)))
}

func TestRecordMovement_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 2, 5)
	ctx := context.Background()

	_, err := f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "sale", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.quantity(t, "p1"))

	movs, err := f.ledger.ListMovements(ctx, inventory.MovementQuery{ProductID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRecordMovement_Validacion(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 5)
	ctx := context.Background()

	_, err := f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "sale", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "regalo", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := decimal.NewFromInt(-1)
	_, err = f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "sale", Quantity: 1, UnitPrice: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "no-existe", Type: "sale", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_CompraResuelveAlertasDeStock(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "p1", 5, 5)
	ctx := context.Background()
	require.NoError(t, f.deriver.Derive(ctx, p, ""))
	require.Contains(t, f.unresolved(t, "p1"), entity.AlertLowStock)

	mov, err := f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "purchase", Quantity: 10, Actor: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 15, mov.AfterQuantity)
	assert.Empty(t, f.unresolved(t, "p1"))

	resolved := true
	list, err := f.store.Alerts().List(ctx, repository.AlertFilter{ProductID: "p1", Resolved: &resolved})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].ResolvedBy)
}

func TestRecordMovement_Concurrente(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 5)
	const n = 50

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := f.ledger.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "purchase", Quantity: 1})
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 10+n, f.quantity(t, "p1"))
	movs, err := f.ledger.ListMovements(context.Background(), inventory.MovementQuery{ProductID: "p1", Limit: 100})
	require.NoError(t, err)
	assert.Len(t, movs, n)
}

func TestRecordMovement_VentasConcurrentesNoDejanNegativo(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 2)

	var g errgroup.Group
	results := make([]error, 15)
	for i := range results {
		i := i
		g.Go(func() error {
			_, results[i] = f.ledger.RecordMovement(context.Background(), inventory.MovementInput{ProductID: "p1", Type: "sale", Quantity: 1})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	failed := 0
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 5, failed)
	assert.Equal(t, 0, f.quantity(t, "p1"))
}

// conflictRunner falla con conflicto las primeras veces y luego delega.
type conflictRunner struct {
	inner     inventory.TxRunner
	conflicts int
	calls     int
}

func (r *conflictRunner) Run(ctx context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository, repository.InventoryAlertRepository) error) error {
	r.calls++
	if r.calls <= r.conflicts {
		return domain.ErrConcurrencyConflict
	}
	return r.inner.Run(ctx, fn)
}

func TestRecordMovement_ReintentosAgotados(t *testing.T) {
	store := memory.New()
	runner := &conflictRunner{inner: store, conflicts: 100}
	ledger := inventory.NewLedgerUseCase(runner, store.Movements(), nil, zerolog.Nop(), inventory.WithMaxRetries(2))

	_, err := ledger.RecordMovement(context.Background(), inventory.MovementInput{ProductID: "p1", Type: "purchase", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, 3, runner.calls)
}

func TestRecordMovement_ReintentaTrasConflicto(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 5)
	runner := &conflictRunner{inner: f.store, conflicts: 2}
	ledger := inventory.NewLedgerUseCase(runner, f.store.Movements(), nil, zerolog.Nop())

	mov, err := ledger.RecordMovement(context.Background(), inventory.MovementInput{ProductID: "p1", Type: "purchase", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 11, mov.AfterQuantity)
	assert.Equal(t, 3, runner.calls)
}

type failingObserver struct{ calls int }

func (o *failingObserver) OnMovement(context.Context, *entity.Product, *entity.StockMovement, string) error {
	o.calls++
	return errors.New("almacén de alertas caído")
}

func TestRecordMovement_FalloDeAlertasNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 5)
	obs := &failingObserver{}
	ledger := inventory.NewLedgerUseCase(f.store, f.store.Movements(), obs, zerolog.Nop())

	mov, err := ledger.RecordMovement(context.Background(), inventory.MovementInput{ProductID: "p1", Type: "sale", Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 2, mov.AfterQuantity)
	assert.Equal(t, 2, f.quantity(t, "p1"))
	assert.Equal(t, 1, obs.calls)
}

func TestGetMovement_NoEncontrado(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.GetMovement(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_Filtros(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 5)
	f.seed(t, "p2", 10, 5)
	ctx := context.Background()
	for _, in := range []inventory.MovementInput{
		{ProductID: "p1", Type: "purchase", Quantity: 1},
		{ProductID: "p1", Type: "sale", Quantity: 2},
		{ProductID: "p2", Type: "sale", Quantity: 3},
	} {
		_, err := f.ledger.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	sales, err := f.ledger.ListMovements(ctx, inventory.MovementQuery{Type: "sale"})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "p2", sales[0].ProductID)

	today, err := f.ledger.ListMovements(ctx, inventory.MovementQuery{ProductID: "p1", DateRange: inventory.DateRangeToday})
	require.NoError(t, err)
	assert.Len(t, today, 2)

	_, err = f.ledger.ListMovements(ctx, inventory.MovementQuery{DateRange: "mes"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
