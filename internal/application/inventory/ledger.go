package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// DefaultMaxRetries reintentos ante conflicto de concurrencia antes de rendirse.
const DefaultMaxRetries = 3

// LedgerUseCase registra movimientos de stock de forma transaccional: bloqueo de la fila del
// producto (SELECT FOR UPDATE), inserción del movimiento y actualización condicional de la
// existencia en la misma transacción.
type LedgerUseCase struct {
	txRunner   TxRunner
	movRepo    repository.StockMovementRepository
	observer   MovementObserver
	log        zerolog.Logger
	maxRetries int
	now        func() time.Time
}

// LedgerOption ajusta el caso de uso.
type LedgerOption func(*LedgerUseCase)

// WithMaxRetries fija los reintentos ante ErrConcurrencyConflict.
func WithMaxRetries(n int) LedgerOption {
	return func(uc *LedgerUseCase) {
		if n >= 0 {
			uc.maxRetries = n
		}
	}
}

// WithLedgerClock reemplaza el reloj (tests).
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el caso de uso. observer puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	observer MovementObserver,
	log zerolog.Logger,
	opts ...LedgerOption,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner:   txRunner,
		movRepo:    movRepo,
		observer:   observer,
		log:        log.With().Str("component", "ledger").Logger(),
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// MovementInput entrada para registrar un movimiento.
// Quantity es siempre positiva; el tipo define si suma o resta.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	UnitPrice *decimal.Decimal // nil = precio de venta actual del producto
	Reference string
	Notes     string
	Actor     string // UserID que registra; lo resuelve la capa de presentación
}

func (in MovementInput) validate() (entity.MovementType, error) {
	if in.ProductID == "" {
		return "", domain.Invalid("product_id", "es requerido")
	}
	typ, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return "", err
	}
	if in.Quantity <= 0 {
		return "", domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return "", domain.Invalid("unit_price", "no puede ser negativo")
	}
	return typ, nil
}

// RecordMovement valida, registra el movimiento y actualiza la existencia en una sola transacción.
// Tras el Commit notifica al observador (derivación de alertas); un fallo ahí se registra en el log
// y no revierte el movimiento.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	typ, err := in.validate()
	if err != nil {
		return nil, err
	}

	var (
		mov     *entity.StockMovement
		product *entity.Product
	)
	for attempt := 0; ; attempt++ {
		mov, product, err = uc.apply(ctx, typ, in)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}
		if attempt >= uc.maxRetries {
			uc.log.Error().Str("product_id", in.ProductID).Int("attempts", attempt+1).Msg("reintentos agotados")
			return nil, fmt.Errorf("registrar movimiento tras %d intentos: %w", attempt+1, domain.ErrConcurrencyConflict)
		}
		uc.log.Warn().Str("product_id", in.ProductID).Int("attempt", attempt+1).Msg("conflicto de concurrencia, reintentando")
	}

	uc.log.Info().
		Str("product_id", product.ID).
		Str("movement_id", mov.ID).
		Str("type", string(mov.Type)).
		Int("before", mov.BeforeQuantity).
		Int("after", mov.AfterQuantity).
		Msg("movimiento registrado")

	if uc.observer != nil {
		if err := uc.observer.OnMovement(ctx, product, mov, in.Actor); err != nil {
			uc.log.Error().Err(err).
				Str("product_id", product.ID).
				Str("movement_id", mov.ID).
				Msg("derivación de alertas falló tras registrar movimiento")
		}
	}
	return mov, nil
}

// apply ejecuta un intento completo dentro de una transacción.
func (uc *LedgerUseCase) apply(ctx context.Context, typ entity.MovementType, in MovementInput) (*entity.StockMovement, *entity.Product, error) {
	var (
		mov     *entity.StockMovement
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.InventoryAlertRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		after, err := typ.Apply(p.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		unitPrice := p.UnitPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		now := uc.now()
		m := &entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      p.ID,
			Type:           typ,
			Quantity:       in.Quantity,
			BeforeQuantity: p.Quantity,
			AfterQuantity:  after,
			UnitPrice:      unitPrice,
			TotalPrice:     unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Reference:      in.Reference,
			Notes:          in.Notes,
			CreatedBy:      in.Actor,
			CreatedAt:      now,
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, p.ID, p.Quantity, after); err != nil {
			return err
		}
		p.Quantity = after
		p.UpdatedAt = now
		mov, product = m, p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return mov, product, nil
}

// GetMovement obtiene un movimiento por ID.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// Rangos de fecha con nombre aceptados por ListMovements.
const (
	DateRangeToday = "today"
	DateRangeWeek  = "week"
)

// MovementQuery filtros de consulta del libro.
type MovementQuery struct {
	ProductID string
	Type      string
	DateRange string // "", today, week; tiene prioridad sobre From/To
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ListMovements lista movimientos, los más recientes primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, q MovementQuery) ([]*entity.StockMovement, error) {
	filter := repository.MovementFilter{
		ProductID: q.ProductID,
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.Type != "" {
		typ, err := entity.ParseMovementType(q.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = typ
	}
	now := uc.now()
	switch q.DateRange {
	case "":
	case DateRangeToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		filter.From, filter.To = &start, nil
	case DateRangeWeek:
		start := now.AddDate(0, 0, -7)
		filter.From, filter.To = &start, nil
	default:
		return nil, domain.Invalid("date_range", "valores permitidos: today, week")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movRepo.List(ctx, filter)
}
