package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/slug"
)

// OpeningStockReference referencia del movimiento que registra la existencia inicial.
const OpeningStockReference = "saldo-inicial"

// StockRecorder registra movimientos en el libro (implementado por inventory.LedgerUseCase).
type StockRecorder interface {
	RecordMovement(ctx context.Context, in inventory.MovementInput) (*entity.StockMovement, error)
}

// AlertRefresher deriva alertas tras editar el catálogo (implementado por inventory.AlertDeriver).
type AlertRefresher interface {
	Derive(ctx context.Context, product *entity.Product, actor string) error
	DeriveNew(ctx context.Context, product *entity.Product, actor string) error
}

// ProductUseCase casos de uso del catálogo. La existencia nunca se edita aquí:
// la inicial entra como movimiento de compra y el resto por el libro.
type ProductUseCase struct {
	repo   repository.ProductRepository
	ledger StockRecorder
	alerts AlertRefresher
	log    zerolog.Logger
	now    func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ledger StockRecorder, alerts AlertRefresher, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{
		repo:   repo,
		ledger: ledger,
		alerts: alerts,
		log:    log.With().Str("component", "catalog").Logger(),
		now:    time.Now,
	}
}

// Create crea un producto con existencia cero, deriva SKU/código de barras/slug y, si se pide,
// registra la existencia inicial como compra.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU != "" {
		existing, err := uc.repo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	mfg, err := parseDate("manufacture_date", in.ManufactureDate)
	if err != nil {
		return nil, err
	}
	exp, err := parseDate("expiry_date", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	reorder := entity.DefaultReorderLevel
	if in.ReorderLevel != nil {
		reorder = *in.ReorderLevel
	}
	if in.InitialQuantity < 0 {
		return nil, domain.Invalid("initial_quantity", "no puede ser negativa")
	}

	now := uc.now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Barcode:         in.Barcode,
		Name:            in.Name,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		UnitPrice:       in.UnitPrice,
		CostPrice:       in.CostPrice,
		TaxRate:         in.TaxRate,
		ReorderLevel:    reorder,
		ManufactureDate: mfg,
		ExpiryDate:      exp,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	number, err := uc.repo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	product.Number = number
	if product.SKU == "" {
		product.SKU = fmt.Sprintf("SKU-%04d", number)
	}
	if product.Barcode == "" {
		product.Barcode = fmt.Sprintf("BC-%08d", number)
	}
	product.Slug = fmt.Sprintf("%s-%d", slug.Make(product.Name), number)

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")

	if in.InitialQuantity > 0 {
		cost := product.CostPrice
		_, err := uc.ledger.RecordMovement(ctx, inventory.MovementInput{
			ProductID: product.ID,
			Type:      string(entity.MovementPurchase),
			Quantity:  in.InitialQuantity,
			UnitPrice: &cost,
			Reference: OpeningStockReference,
			Actor:     actor,
		})
		if err != nil {
			// El producto queda creado con existencia cero: se deriva igual para no perder el vencimiento.
			uc.log.Error().Err(err).Str("product_id", product.ID).Msg("existencia inicial no registrada")
			if derr := uc.alerts.DeriveNew(ctx, product, actor); derr != nil {
				uc.log.Error().Err(derr).Str("product_id", product.ID).Msg("derivación de alertas falló tras crear producto")
			}
			return nil, fmt.Errorf("producto %s creado sin existencia inicial: %w", product.ID, err)
		}
		// El libro ya derivó alertas con la existencia nueva.
		return uc.GetByID(ctx, product.ID)
	}

	if err := uc.alerts.DeriveNew(ctx, product, actor); err != nil {
		uc.log.Error().Err(err).Str("product_id", product.ID).Msg("derivación de alertas falló tras crear producto")
	}
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// Update actualiza datos de catálogo y vuelve a derivar alertas: el punto de reorden y la
// fecha de vencimiento cambian qué alertas corresponden.
func (uc *ProductUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.TaxRate != nil {
		product.TaxRate = *in.TaxRate
	}
	if in.ReorderLevel != nil {
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.ManufactureDate != nil {
		if product.ManufactureDate, err = parseDate("manufacture_date", in.ManufactureDate); err != nil {
			return nil, err
		}
	}
	switch {
	case in.ClearExpiryDate:
		product.ExpiryDate = nil
	case in.ExpiryDate != nil:
		if product.ExpiryDate, err = parseDate("expiry_date", in.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.alerts.Derive(ctx, product, actor); err != nil {
		uc.log.Error().Err(err).Str("product_id", product.ID).Msg("derivación de alertas falló tras editar producto")
	}
	return uc.toResponse(product), nil
}

// ProductQuery filtros del listado de catálogo. Status: "", low_stock, out_of_stock.
// Search busca en nombre, SKU y código de barras.
type ProductQuery struct {
	Status     string
	Search     string
	CategoryID string
	SupplierID string
	Limit      int
	Offset     int
}

// List lista productos activos.
func (uc *ProductUseCase) List(ctx context.Context, q ProductQuery) (*dto.ProductListResponse, error) {
	switch q.Status {
	case "", entity.StockStatusLow, entity.StockStatusOut:
	default:
		return nil, domain.Invalid("status", "valores permitidos: low_stock, out_of_stock")
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		ActiveOnly:  true,
		StockStatus: q.Status,
		Search:      strings.TrimSpace(q.Search),
		CategoryID:  q.CategoryID,
		SupplierID:  q.SupplierID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, q.Limit, q.Offset), nil
}

// ListExpiringSoon lista productos activos que vencen entre hoy y hoy+days.
func (uc *ProductUseCase) ListExpiringSoon(ctx context.Context, days, limit, offset int) (*dto.ProductListResponse, error) {
	if days < 0 {
		return nil, domain.Invalid("days", "no puede ser negativo")
	}
	today := entity.DateOnly(uc.now())
	until := today.AddDate(0, 0, days)
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		ActiveOnly: true,
		ExpiringBy: &until,
		Today:      today,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, limit, offset), nil
}

func (uc *ProductUseCase) toListResponse(list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Barcode:         p.Barcode,
		Slug:            p.Slug,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		UnitPrice:       p.UnitPrice,
		CostPrice:       p.CostPrice,
		TaxRate:         p.TaxRate,
		Quantity:        p.Quantity,
		ReorderLevel:    p.ReorderLevel,
		StockStatus:     p.StockStatus(),
		TotalValue:      p.TotalValue(),
		ManufactureDate: formatDate(p.ManufactureDate),
		ExpiryDate:      formatDate(p.ExpiryDate),
		DaysToExpiry:    p.DaysToExpiry(uc.now()),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *s)
	if err != nil {
		return nil, domain.Invalid(field, "formato esperado AAAA-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}
