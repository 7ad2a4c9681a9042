// Package memory implementa los repositorios sobre un estado en memoria, con las mismas
// garantías que PostgreSQL en cuanto a atomicidad del libro y deduplicación de alertas.
// Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

type state struct {
	seq        int64
	products   map[string]entity.Product
	movements  []entity.StockMovement
	alerts     []entity.InventoryAlert
	users      map[string]entity.User
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		users:      make(map[string]entity.User),
		categories: make(map[string]entity.Category),
		suppliers:  make(map[string]entity.Supplier),
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:        s.seq,
		products:   make(map[string]entity.Product, len(s.products)),
		movements:  make([]entity.StockMovement, len(s.movements)),
		alerts:     make([]entity.InventoryAlert, len(s.alerts)),
		users:      make(map[string]entity.User, len(s.users)),
		categories: make(map[string]entity.Category, len(s.categories)),
		suppliers:  make(map[string]entity.Supplier, len(s.suppliers)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	copy(c.movements, s.movements)
	copy(c.alerts, s.alerts)
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	return c
}

// Store estado compartido. Las escrituras de Run se ven completas o no se ven.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// access da acceso exclusivo al estado durante fn.
type access func(fn func(*state) error) error

func (s *Store) locked(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func direct(st *state) access {
	return func(fn func(*state) error) error { return fn(st) }
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{with: s.locked} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepository {
	return &StockMovementRepository{with: s.locked}
}

// Alerts repositorio de alertas fuera de transacción.
func (s *Store) Alerts() *InventoryAlertRepository { return &InventoryAlertRepository{with: s.locked} }

// Analytics consultas del tablero.
func (s *Store) Analytics() *AnalyticsRepository { return &AnalyticsRepository{with: s.locked} }

// Categories directorio de categorías.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{with: s.locked} }

// Suppliers directorio de proveedores.
func (s *Store) Suppliers() *SupplierRepository { return &SupplierRepository{with: s.locked} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{with: s.locked} }

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Las transacciones se serializan. fn no debe usar los repositorios del Store (no reentrante).
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	alertRepo repository.InventoryAlertRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	with := direct(tx)
	if err := fn(
		&StockMovementRepository{with: with},
		&ProductRepository{with: with},
		&InventoryAlertRepository{with: with},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = tx
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
