package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ MovementObserver = (*AlertDeriver)(nil)

// AlertDeriver traduce el estado de un producto en alertas: crea o actualiza la alerta
// no resuelta de cada clave y resuelve las superadas. Cada derivación corre en su propia
// transacción y puede repetirse sin generar duplicados.
type AlertDeriver struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         zerolog.Logger
	windowDays  int
	now         func() time.Time
}

// DeriverOption ajusta el derivador.
type DeriverOption func(*AlertDeriver)

// WithExpiryWindow fija la ventana de alerta de vencimiento en días.
func WithExpiryWindow(days int) DeriverOption {
	return func(d *AlertDeriver) {
		if days >= 0 {
			d.windowDays = days
		}
	}
}

// WithDeriverClock reemplaza el reloj (tests).
func WithDeriverClock(now func() time.Time) DeriverOption {
	return func(d *AlertDeriver) { d.now = now }
}

// NewAlertDeriver construye el derivador. productRepo recorre el catálogo en Sweep.
func NewAlertDeriver(txRunner TxRunner, productRepo repository.ProductRepository, log zerolog.Logger, opts ...DeriverOption) *AlertDeriver {
	d := &AlertDeriver{
		txRunner:    txRunner,
		productRepo: productRepo,
		log:         log.With().Str("component", "alert_deriver").Logger(),
		windowDays:  domaininv.DefaultExpiryWindowDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Derive aplica las reglas de stock y vencimiento al estado actual del producto.
func (d *AlertDeriver) Derive(ctx context.Context, product *entity.Product, actor string) error {
	return d.derive(ctx, product.ID, actor, false, nil)
}

// DeriveNew se usa al crear un producto: con existencia cero no se alerta stock, solo vencimiento.
func (d *AlertDeriver) DeriveNew(ctx context.Context, product *entity.Product, actor string) error {
	return d.derive(ctx, product.ID, actor, true, nil)
}

// OnMovement deriva tras un movimiento confirmado. Una compra o devolución que deja la
// existencia sobre el punto de reorden cierra las alertas de stock abiertas.
func (d *AlertDeriver) OnMovement(ctx context.Context, product *entity.Product, movement *entity.StockMovement, actor string) error {
	return d.derive(ctx, product.ID, actor, false, movement)
}

// derive relee el producto dentro de la transacción: las reglas se evalúan sobre la fila
// vigente y no sobre la copia del llamador, que pudo quedar atrás frente a otro movimiento.
func (d *AlertDeriver) derive(ctx context.Context, productID, actor string, isNew bool, movement *entity.StockMovement) error {
	now := d.now()
	err := d.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.InventoryAlertRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		decisions := make([]domaininv.Decision, 0, 2)
		if !isNew || product.Quantity > 0 {
			decisions = append(decisions, domaininv.StockDecision(product))
		}
		decisions = append(decisions, domaininv.ExpiryDecision(product, now, d.windowDays))

		if movement != nil && domaininv.RestockResolves(product, movement) {
			n, err := alertRepo.ResolveAll(ctx, product.ID, entity.StockAlertTypes, actor, now)
			if err != nil {
				return err
			}
			if n > 0 {
				d.log.Info().Str("product_id", product.ID).Int("resolved", n).Msg("alertas de stock resueltas por reposición")
			}
		}
		for _, dec := range decisions {
			if dec.None() {
				continue
			}
			if len(dec.Resolve) > 0 {
				if _, err := alertRepo.ResolveAll(ctx, product.ID, dec.Resolve, actor, now); err != nil {
					return err
				}
			}
			if dec.Upsert == "" {
				continue
			}
			if err := dec.Fields.Validate(dec.Upsert); err != nil {
				return err
			}
			alert, err := alertRepo.UpsertUnresolved(ctx, product.ID, dec.Upsert, dec.Fields, now)
			if err != nil {
				return err
			}
			d.log.Debug().Str("product_id", product.ID).Str("alert_id", alert.ID).Str("type", string(alert.Type)).Msg("alerta vigente")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("derivar alertas de %s: %w", productID, err)
	}
	return nil
}

// SweepResult resumen de un barrido.
type SweepResult struct {
	Products int `json:"products"`
	Failures int `json:"failures"`
}

const sweepPageSize = 200

// Sweep deriva alertas para todos los productos activos. Un fallo por producto se registra
// y el barrido continúa; solo un error al listar lo interrumpe.
func (d *AlertDeriver) Sweep(ctx context.Context, actor string) (SweepResult, error) {
	var res SweepResult
	for offset := 0; ; offset += sweepPageSize {
		page, err := d.productRepo.List(ctx, repository.ProductFilter{
			ActiveOnly: true,
			Limit:      sweepPageSize,
			Offset:     offset,
		})
		if err != nil {
			return res, fmt.Errorf("listar productos: %w", err)
		}
		for _, p := range page {
			res.Products++
			if err := d.Derive(ctx, p, actor); err != nil {
				res.Failures++
				d.log.Error().Err(err).Str("product_id", p.ID).Msg("barrido: derivación falló")
			}
		}
		if len(page) < sweepPageSize {
			break
		}
	}
	d.log.Info().Int("products", res.Products).Int("failures", res.Failures).Msg("barrido de alertas terminado")
	return res, nil
}
