package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/grants-api/internal/application/dto"
	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/entity"
	"github.com/jhoicas/grants-api/internal/domain/repository"
)

// GrantUseCase casos de uso CRUD para convocatorias.
// Las categorías referenciadas se resuelven y se asocian en la misma transacción (todo o nada).
type GrantUseCase struct {
	tx  TxRunner
	now Clock
}

// NewGrantUseCase construye el caso de uso.
func NewGrantUseCase(tx TxRunner, now Clock) *GrantUseCase {
	if now == nil {
		now = SystemClock
	}
	return &GrantUseCase{tx: tx, now: now}
}

// Now expone el reloj del caso de uso para fijar GrantFilter.Now una vez por petición.
func (uc *GrantUseCase) Now() time.Time { return uc.now() }

// List lista convocatorias filtradas, más recientes primero, paginadas.
func (uc *GrantUseCase) List(ctx context.Context, filter catalog.GrantFilter, req catalog.PageRequest) (*dto.GrantListResponse, error) {
	req = req.Normalize()
	if filter.CategoryID != "" {
		if !catalog.IsValidID(filter.CategoryID) {
			verr := &domain.ValidationError{}
			verr.Add("categoryId", "no es un identificador válido")
			return nil, verr
		}
		filter.CategoryID = catalog.CanonicalID(filter.CategoryID)
	}
	if filter.Now.IsZero() {
		filter.Now = uc.now()
	}
	var (
		items []*entity.Grant
		total int
	)
	err := uc.tx.View(ctx, func(_ repository.CategoryRepository, grantRepo repository.GrantRepository) error {
		var err error
		total, err = grantRepo.Count(ctx, filter)
		if err != nil {
			return err
		}
		if req.Beyond(total) {
			return nil
		}
		items, err = grantRepo.List(ctx, filter, req.Limit(), req.Offset())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listar convocatorias: %w", err)
	}
	page := catalog.NewPage(items, total, req)
	out := dto.NewPagedResponse(page, func(g *entity.Grant) dto.GrantResponse { return *toGrantResponse(g) })
	return &out, nil
}

// GetByID obtiene una convocatoria con sus categorías.
func (uc *GrantUseCase) GetByID(ctx context.Context, id string) (*dto.GrantResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	id = catalog.CanonicalID(id)
	var grant *entity.Grant
	err := uc.tx.View(ctx, func(_ repository.CategoryRepository, grantRepo repository.GrantRepository) error {
		var err error
		grant, err = grantRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("obtener convocatoria %s: %w", id, err)
	}
	if grant == nil {
		return nil, domain.ErrNotFound
	}
	return toGrantResponse(grant), nil
}

// Create crea una convocatoria y la asocia a categoryIDs.
// Si algún ID no existe → domain.ErrUnknownCategoryReference y no se escribe nada.
func (uc *GrantUseCase) Create(ctx context.Context, in catalog.GrantInput) (*dto.GrantResponse, error) {
	now := uc.now()
	in = in.Sanitize()
	if err := catalog.ValidateGrant(in, now, true); err != nil {
		return nil, err
	}
	grant := &entity.Grant{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Description:   in.Description,
		Country:       in.Country,
		Deadline:      in.Deadline,
		Requirements:  in.Requirements,
		FundingAmount: in.FundingAmount,
		IsActive:      true,
		Version:       1,
		CreatedAt:     now,
	}
	if in.IsActive != nil {
		grant.IsActive = *in.IsActive
	}
	ids := catalog.DistinctIDs(in.CategoryIDs)
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, grantRepo repository.GrantRepository) error {
		refs, err := resolveCategories(ctx, categoryRepo, ids)
		if err != nil {
			return err
		}
		if err := grantRepo.Create(ctx, grant); err != nil {
			return err
		}
		if err := grantRepo.ReplaceCategories(ctx, grant.ID, ids); err != nil {
			return err
		}
		grant.Categories = refs
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategoryReference) {
			zerolog.Ctx(ctx).Warn().Strs("category_ids", ids).Msg("convocatoria referencia categorías inexistentes")
		}
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("grant_id", grant.ID).Int("categories", len(ids)).Msg("convocatoria creada")
	return toGrantResponse(grant), nil
}

// Update reemplaza los campos y el conjunto completo de categorías (no es incremental:
// categoryIds vacío deja la convocatoria sin categorías).
func (uc *GrantUseCase) Update(ctx context.Context, id string, in catalog.GrantInput, version *int) error {
	if err := validateID(id); err != nil {
		return err
	}
	id = catalog.CanonicalID(id)
	now := uc.now()
	in = in.Sanitize()
	if err := catalog.ValidateGrant(in, now, false); err != nil {
		return err
	}
	ids := catalog.DistinctIDs(in.CategoryIDs)
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, grantRepo repository.GrantRepository) error {
		grant, err := grantRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if grant == nil {
			return domain.ErrNotFound
		}
		if version != nil && *version != grant.Version {
			return domain.ErrConflict
		}
		if _, err := resolveCategories(ctx, categoryRepo, ids); err != nil {
			return err
		}
		expected := grant.Version
		updatedAt := nextUpdatedAt(now, grant.CreatedAt, grant.UpdatedAt)
		grant.Title = in.Title
		grant.Description = in.Description
		grant.Country = in.Country
		grant.Deadline = in.Deadline
		grant.Requirements = in.Requirements
		grant.FundingAmount = in.FundingAmount
		if in.IsActive != nil {
			grant.IsActive = *in.IsActive
		}
		grant.UpdatedAt = &updatedAt
		grant.Version = expected + 1
		if err := grantRepo.Update(ctx, grant, expected); err != nil {
			return err
		}
		return grantRepo.ReplaceCategories(ctx, id, ids)
	})
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("grant_id", id).Int("categories", len(ids)).Msg("convocatoria actualizada")
	return nil
}

// Delete elimina una convocatoria; sus asociaciones con categorías caen en cascada.
func (uc *GrantUseCase) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	id = catalog.CanonicalID(id)
	err := uc.tx.Run(ctx, func(_ repository.CategoryRepository, grantRepo repository.GrantRepository) error {
		return grantRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("grant_id", id).Msg("convocatoria eliminada")
	return nil
}

// resolveCategories verifica que todos los ids (ya sin duplicados) existan.
func resolveCategories(ctx context.Context, categoryRepo repository.CategoryRepository, ids []string) ([]entity.CategoryRef, error) {
	if len(ids) == 0 {
		return []entity.CategoryRef{}, nil
	}
	refs, err := categoryRepo.ResolveRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(refs) < len(ids) {
		return nil, domain.ErrUnknownCategoryReference
	}
	return refs, nil
}

func toGrantResponse(g *entity.Grant) *dto.GrantResponse {
	if g == nil {
		return nil
	}
	cats := make([]dto.CategorySummary, 0, len(g.Categories))
	for _, c := range g.Categories {
		cats = append(cats, dto.CategorySummary{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return &dto.GrantResponse{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		Country:       g.Country,
		Deadline:      g.Deadline,
		Requirements:  g.Requirements,
		FundingAmount: g.FundingAmount,
		IsActive:      g.IsActive,
		Version:       g.Version,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		Categories:    cats,
	}
}
