package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/entity"
	"github.com/jhoicas/grants-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementa CategoryRepository sobre el estado de una transacción.
type CategoryRepo struct {
	st       *state
	readOnly bool
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if r.readOnly {
		return errReadOnly
	}
	if _, ok := r.st.categories[c.ID]; ok {
		return fmt.Errorf("memory: categoría %s ya existe", c.ID)
	}
	if r.nameTaken(c.NormalizedName, "") {
		return domain.ErrDuplicateName
	}
	r.st.categories[c.ID] = *cloneCategory(c)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.st.categories[id]
	if !ok {
		return nil, nil
	}
	return cloneCategory(&c), nil
}

// GetByIDForUpdate equivale a GetByID: el Store ya serializa las escrituras.
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

func (r *CategoryRepo) FindByNormalizedName(_ context.Context, normalized, excludeID string) (*entity.Category, error) {
	for id, c := range r.st.categories {
		if id != excludeID && c.NormalizedName == normalized {
			return cloneCategory(&c), nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category, expectedVersion int) error {
	if r.readOnly {
		return errReadOnly
	}
	stored, ok := r.st.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	if r.nameTaken(c.NormalizedName, c.ID) {
		return domain.ErrDuplicateName
	}
	r.st.categories[c.ID] = *cloneCategory(c)
	return nil
}

// Delete elimina la categoría y sus asociaciones (misma semántica que ON DELETE CASCADE).
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	if r.readOnly {
		return errReadOnly
	}
	if _, ok := r.st.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.categories, id)
	for _, set := range r.st.links {
		delete(set, id)
	}
	return nil
}

func (r *CategoryRepo) List(_ context.Context, filter catalog.CategoryFilter, limit, offset int) ([]*entity.Category, error) {
	return window(r.matching(filter), limit, offset), nil
}

func (r *CategoryRepo) Count(_ context.Context, filter catalog.CategoryFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *CategoryRepo) CountGrants(_ context.Context, categoryID string) (int, error) {
	n := 0
	for _, set := range r.st.links {
		if _, ok := set[categoryID]; ok {
			n++
		}
	}
	return n, nil
}

func (r *CategoryRepo) ListGrants(_ context.Context, categoryID string) ([]entity.GrantRef, error) {
	grants := make([]*entity.Grant, 0)
	for grantID, set := range r.st.links {
		if _, ok := set[categoryID]; !ok {
			continue
		}
		if g, ok := r.st.grants[grantID]; ok {
			grants = append(grants, &g)
		}
	}
	sort.Slice(grants, func(i, j int) bool { return catalog.GrantLess(grants[i], grants[j]) })
	refs := make([]entity.GrantRef, 0, len(grants))
	for _, g := range grants {
		refs = append(refs, entity.GrantRef{ID: g.ID, Title: g.Title})
	}
	return refs, nil
}

func (r *CategoryRepo) ResolveRefs(_ context.Context, ids []string) ([]entity.CategoryRef, error) {
	found := make([]*entity.Category, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := r.st.categories[id]; ok {
			found = append(found, &c)
		}
	}
	return toRefs(found), nil
}

func (r *CategoryRepo) matching(filter catalog.CategoryFilter) []*entity.Category {
	out := make([]*entity.Category, 0, len(r.st.categories))
	for _, c := range r.st.categories {
		c := c
		if filter.Matches(&c) {
			out = append(out, cloneCategory(&c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return catalog.CategoryLess(out[i], out[j]) })
	return out
}

func (r *CategoryRepo) nameTaken(normalized, excludeID string) bool {
	for id, c := range r.st.categories {
		if id != excludeID && c.NormalizedName == normalized {
			return true
		}
	}
	return false
}

// toRefs ordena por nombre e id y reduce a CategoryRef.
func toRefs(cats []*entity.Category) []entity.CategoryRef {
	sort.Slice(cats, func(i, j int) bool { return catalog.CategoryLess(cats[i], cats[j]) })
	refs := make([]entity.CategoryRef, 0, len(cats))
	for _, c := range cats {
		refs = append(refs, entity.CategoryRef{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return refs
}

func cloneCategory(c *entity.Category) *entity.Category {
	out := *c
	if c.UpdatedAt != nil {
		u := *c.UpdatedAt
		out.UpdatedAt = &u
	}
	return &out
}
