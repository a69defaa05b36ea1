package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/grants-api/internal/application/dto"
	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/entity"
	"github.com/jhoicas/grants-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
// Unicidad del nombre y borrado sin dependientes se verifican dentro de la misma transacción que la escritura.
type CategoryUseCase struct {
	tx  TxRunner
	now Clock
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(tx TxRunner, now Clock) *CategoryUseCase {
	if now == nil {
		now = SystemClock
	}
	return &CategoryUseCase{tx: tx, now: now}
}

// List lista categorías filtradas por search, ordenadas por nombre, paginadas.
func (uc *CategoryUseCase) List(ctx context.Context, filter catalog.CategoryFilter, req catalog.PageRequest) (*dto.CategoryListResponse, error) {
	req = req.Normalize()
	var (
		items []*entity.Category
		total int
	)
	err := uc.tx.View(ctx, func(categoryRepo repository.CategoryRepository, _ repository.GrantRepository) error {
		var err error
		total, err = categoryRepo.Count(ctx, filter)
		if err != nil {
			return err
		}
		if req.Beyond(total) {
			return nil
		}
		items, err = categoryRepo.List(ctx, filter, req.Limit(), req.Offset())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	page := catalog.NewPage(items, total, req)
	out := dto.NewPagedResponse(page, func(c *entity.Category) dto.CategoryResponse { return *toCategoryResponse(c) })
	return &out, nil
}

// GetByID obtiene una categoría con sus convocatorias asociadas.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryDetailResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	id = catalog.CanonicalID(id)
	var (
		category *entity.Category
		grants   []entity.GrantRef
	)
	err := uc.tx.View(ctx, func(categoryRepo repository.CategoryRepository, _ repository.GrantRepository) error {
		var err error
		category, err = categoryRepo.GetByID(ctx, id)
		if err != nil || category == nil {
			return err
		}
		grants, err = categoryRepo.ListGrants(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("obtener categoría %s: %w", id, err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.CategoryDetailResponse{
		CategoryResponse: *toCategoryResponse(category),
		GrantCount:       len(grants),
		Grants:           make([]dto.GrantSummary, 0, len(grants)),
	}
	for _, g := range grants {
		out.Grants = append(out.Grants, dto.GrantSummary{ID: g.ID, Title: g.Title})
	}
	return out, nil
}

// Create crea una categoría. Devuelve domain.ErrDuplicateName si el nombre ya existe (sin distinguir mayúsculas).
func (uc *CategoryUseCase) Create(ctx context.Context, in catalog.CategoryInput) (*dto.CategoryResponse, error) {
	in = in.Sanitize()
	if err := catalog.ValidateCategory(in); err != nil {
		return nil, err
	}
	category := &entity.Category{
		ID:             uuid.New().String(),
		Name:           in.Name,
		NormalizedName: catalog.NormalizeName(in.Name),
		Description:    in.Description,
		Version:        1,
		CreatedAt:      uc.now(),
	}
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.GrantRepository) error {
		existing, err := categoryRepo.FindByNormalizedName(ctx, category.NormalizedName, "")
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateName
		}
		return categoryRepo.Create(ctx, category)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			zerolog.Ctx(ctx).Warn().Str("name", in.Name).Msg("categoría duplicada")
		}
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("category_id", category.ID).Msg("categoría creada")
	return toCategoryResponse(category), nil
}

// Update actualiza name/description. Si version no es nil y difiere de la almacenada → domain.ErrConflict.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in catalog.CategoryInput, version *int) error {
	if err := validateID(id); err != nil {
		return err
	}
	id = catalog.CanonicalID(id)
	in = in.Sanitize()
	if err := catalog.ValidateCategory(in); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.GrantRepository) error {
		category, err := categoryRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		if version != nil && *version != category.Version {
			return domain.ErrConflict
		}
		normalized := catalog.NormalizeName(in.Name)
		existing, err := categoryRepo.FindByNormalizedName(ctx, normalized, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateName
		}
		expected := category.Version
		updatedAt := nextUpdatedAt(uc.now(), category.CreatedAt, category.UpdatedAt)
		category.Name = in.Name
		category.NormalizedName = normalized
		category.Description = in.Description
		category.UpdatedAt = &updatedAt
		category.Version = expected + 1
		return categoryRepo.Update(ctx, category, expected)
	})
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("category_id", id).Msg("categoría actualizada")
	return nil
}

// Delete elimina una categoría sin convocatorias asociadas; si tiene alguna → domain.ErrHasDependents.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	id = catalog.CanonicalID(id)
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.GrantRepository) error {
		category, err := categoryRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		n, err := categoryRepo.CountGrants(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasDependents
		}
		return categoryRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrHasDependents) {
			zerolog.Ctx(ctx).Warn().Str("category_id", id).Msg("categoría con convocatorias asociadas, no se elimina")
		}
		return err
	}
	zerolog.Ctx(ctx).Info().Str("category_id", id).Msg("categoría eliminada")
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
