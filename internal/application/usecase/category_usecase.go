package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/slug"
)

// CategoryUseCase casos de uso del árbol de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		repo: repo,
		log:  log.With().Str("component", "categories").Logger(),
		now:  time.Now,
	}
}

// Create crea una categoría; el slug se deriva del nombre.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := uc.now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		ParentID:    in.ParentID,
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("category_id", c.ID).Str("slug", c.Slug).Msg("categoría creada")
	out := toCategoryResponse(c)
	return &out, nil
}

// GetByID devuelve la categoría con sus hijas directas y cuántos productos activos tiene.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryDetailResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.repo.ProductCount(ctx, id)
	if err != nil {
		return nil, err
	}
	children, err := uc.repo.List(ctx, repository.CategoryFilter{ParentID: &c.ID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryDetailResponse{
		CategoryResponse: toCategoryResponse(c),
		ProductCount:     count,
		Children:         make([]dto.CategoryResponse, 0, len(children)),
	}
	for _, ch := range children {
		out.Children = append(out.Children, toCategoryResponse(ch))
	}
	return out, nil
}

// Update edita la categoría. Renombrar recalcula el slug; el nuevo padre no puede ser un descendiente.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != c.Name {
		c.Name = *in.Name
		c.Slug = slug.Make(c.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	switch {
	case in.ClearParent:
		c.ParentID = ""
	case in.ParentID != nil && *in.ParentID != c.ParentID:
		if err := uc.checkAncestry(ctx, c.ID, *in.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = *in.ParentID
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// checkAncestry recorre los ancestros de parentID: si aparece id, el cambio formaría un ciclo.
func (uc *CategoryUseCase) checkAncestry(ctx context.Context, id, parentID string) error {
	seen := map[string]bool{}
	for cur := parentID; cur != ""; {
		if cur == id {
			return domain.Invalid("parent_id", "formaría un ciclo")
		}
		if seen[cur] {
			return nil
		}
		seen[cur] = true
		p, err := uc.repo.GetByID(ctx, cur)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.Invalid("parent_id", "no existe")
		}
		cur = p.ParentID
	}
	return nil
}

// List categorías activas. parentID nil: todas; "": solo raíces.
func (uc *CategoryUseCase) List(ctx context.Context, parentID *string, limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(ctx, repository.CategoryFilter{
		ParentID:   parentID,
		ActiveOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{
		Items: make([]dto.CategoryResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, toCategoryResponse(c))
	}
	return out, nil
}

// Deactivate da de baja la categoría. Los productos y subcategorías conservan la referencia.
func (uc *CategoryUseCase) Deactivate(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if !c.IsActive {
		return nil
	}
	c.IsActive = false
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return err
	}
	uc.log.Info().Str("category_id", c.ID).Msg("categoría desactivada")
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
