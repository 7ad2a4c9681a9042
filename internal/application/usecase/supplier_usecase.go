package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSupplierUseCase(repo repository.SupplierRepository, log zerolog.Logger) *SupplierUseCase {
	return &SupplierUseCase{
		repo: repo,
		log:  log.With().Str("component", "suppliers").Logger(),
		now:  time.Now,
	}
}

// Create registra un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := uc.now()
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Website:       in.Website,
		Notes:         in.Notes,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("supplier_id", s.ID).Msg("proveedor registrado")
	out := toSupplierResponse(s)
	return &out, nil
}

// GetByID devuelve el proveedor con el total de productos activos que abastece y su valor a costo.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierDetailResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	stats, err := uc.repo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierDetailResponse{
		SupplierResponse:      toSupplierResponse(s),
		TotalProductsSupplied: stats.Products,
		TotalInventoryValue:   stats.InventoryValue,
	}, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactPerson != nil {
		s.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Website != nil {
		s.Website = *in.Website
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	s.Name = strings.TrimSpace(s.Name)
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// List proveedores activos; search filtra por nombre o contacto.
func (uc *SupplierUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.List(ctx, repository.SupplierFilter{
		ActiveOnly: true,
		Search:     strings.TrimSpace(search),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.SupplierListResponse{
		Items: make([]dto.SupplierResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range list {
		out.Items = append(out.Items, toSupplierResponse(s))
	}
	return out, nil
}

// Deactivate da de baja al proveedor; sus productos conservan la referencia.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if !s.IsActive {
		return nil
	}
	s.IsActive = false
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return err
	}
	uc.log.Info().Str("supplier_id", s.ID).Msg("proveedor desactivado")
	return nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Website:       s.Website,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
