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

var _ repository.GrantRepository = (*GrantRepo)(nil)

// GrantRepo implementa GrantRepository sobre el estado de una transacción.
type GrantRepo struct {
	st       *state
	readOnly bool
}

func (r *GrantRepo) Create(_ context.Context, g *entity.Grant) error {
	if r.readOnly {
		return errReadOnly
	}
	if _, ok := r.st.grants[g.ID]; ok {
		return fmt.Errorf("memory: convocatoria %s ya existe", g.ID)
	}
	r.st.grants[g.ID] = *cloneGrant(g)
	r.st.links[g.ID] = map[string]struct{}{}
	return nil
}

func (r *GrantRepo) GetByID(_ context.Context, id string) (*entity.Grant, error) {
	g, ok := r.st.grants[id]
	if !ok {
		return nil, nil
	}
	return r.withCategories(&g), nil
}

func (r *GrantRepo) Update(_ context.Context, g *entity.Grant, expectedVersion int) error {
	if r.readOnly {
		return errReadOnly
	}
	stored, ok := r.st.grants[g.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	r.st.grants[g.ID] = *cloneGrant(g)
	return nil
}

func (r *GrantRepo) Delete(_ context.Context, id string) error {
	if r.readOnly {
		return errReadOnly
	}
	if _, ok := r.st.grants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.grants, id)
	delete(r.st.links, id)
	return nil
}

// ReplaceCategories verifica cada referencia como lo haría la FK de grant_categories.
func (r *GrantRepo) ReplaceCategories(_ context.Context, grantID string, categoryIDs []string) error {
	if r.readOnly {
		return errReadOnly
	}
	if _, ok := r.st.grants[grantID]; !ok {
		return domain.ErrNotFound
	}
	set := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := r.st.categories[id]; !ok {
			return domain.ErrUnknownCategoryReference
		}
		set[id] = struct{}{}
	}
	r.st.links[grantID] = set
	return nil
}

func (r *GrantRepo) List(_ context.Context, filter catalog.GrantFilter, limit, offset int) ([]*entity.Grant, error) {
	return window(r.matching(filter), limit, offset), nil
}

func (r *GrantRepo) Count(_ context.Context, filter catalog.GrantFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *GrantRepo) matching(filter catalog.GrantFilter) []*entity.Grant {
	out := make([]*entity.Grant, 0, len(r.st.grants))
	for _, g := range r.st.grants {
		g := g
		full := r.withCategories(&g)
		if filter.Matches(full, full.CategoryIDs()) {
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return catalog.GrantLess(out[i], out[j]) })
	return out
}

func (r *GrantRepo) withCategories(g *entity.Grant) *entity.Grant {
	out := cloneGrant(g)
	cats := make([]*entity.Category, 0, len(r.st.links[g.ID]))
	for id := range r.st.links[g.ID] {
		if c, ok := r.st.categories[id]; ok {
			cats = append(cats, &c)
		}
	}
	out.Categories = toRefs(cats)
	return out
}

func cloneGrant(g *entity.Grant) *entity.Grant {
	out := *g
	if g.UpdatedAt != nil {
		u := *g.UpdatedAt
		out.UpdatedAt = &u
	}
	out.Categories = nil
	return &out
}
