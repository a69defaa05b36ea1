package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/entity"
	"github.com/jhoicas/grants-api/internal/domain/repository"
)

var _ repository.GrantRepository = (*GrantRepo)(nil)

const grantColumns = `g.id, g.title, g.description, g.country, g.deadline, g.requirements, g.funding_amount,
	g.is_active, g.version, g.created_at, g.updated_at`

// GrantRepo implementa el puerto GrantRepository sobre PostgreSQL (usable con pool o tx).
type GrantRepo struct {
	q Querier
}

// NewGrantRepository construye el adaptador de persistencia para convocatorias. Pasar pool o tx (Querier).
func NewGrantRepository(q Querier) *GrantRepo {
	return &GrantRepo{q: q}
}

// Create persiste una nueva convocatoria (sin categorías).
func (r *GrantRepo) Create(ctx context.Context, g *entity.Grant) error {
	const query = `
		INSERT INTO grants (id, title, description, country, deadline, requirements, funding_amount,
			is_active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		g.ID, g.Title, g.Description, g.Country, g.Deadline, g.Requirements, g.FundingAmount,
		g.IsActive, g.Version, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return classify("insert grant", err)
	}
	return nil
}

// GetByID obtiene una convocatoria con sus categorías.
func (r *GrantRepo) GetByID(ctx context.Context, id string) (*entity.Grant, error) {
	g, err := scanGrant(r.q.QueryRow(ctx, `SELECT `+grantColumns+` FROM grants g WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get grant", err)
	}
	if err := r.loadCategories(ctx, []*entity.Grant{g}); err != nil {
		return nil, err
	}
	return g, nil
}

// Update persiste los campos editables si la versión almacenada coincide.
func (r *GrantRepo) Update(ctx context.Context, g *entity.Grant, expectedVersion int) error {
	const query = `
		UPDATE grants
		SET title = $2, description = $3, country = $4, deadline = $5, requirements = $6,
			funding_amount = $7, is_active = $8, version = $9, updated_at = $10
		WHERE id = $1 AND version = $11`
	cmd, err := r.q.Exec(ctx, query,
		g.ID, g.Title, g.Description, g.Country, g.Deadline, g.Requirements,
		g.FundingAmount, g.IsActive, g.Version, g.UpdatedAt, expectedVersion,
	)
	if err != nil {
		return classify("update grant", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM grants WHERE id = $1)`, g.ID).Scan(&exists); err != nil {
			return classify("check grant", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

// Delete elimina una convocatoria; grant_categories cae por ON DELETE CASCADE.
func (r *GrantRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM grants WHERE id = $1`, id)
	if err != nil {
		return classify("delete grant", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceCategories borra las asociaciones previas e inserta las nuevas (clear-then-insert).
func (r *GrantRepo) ReplaceCategories(ctx context.Context, grantID string, categoryIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM grant_categories WHERE grant_id = $1`, grantID); err != nil {
		return classify("clear grant categories", err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	const query = `
		INSERT INTO grant_categories (category_id, grant_id)
		SELECT unnest($2::uuid[]), $1::uuid`
	if _, err := r.q.Exec(ctx, query, grantID, categoryIDs); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownCategoryReference
		}
		return classify("insert grant categories", err)
	}
	return nil
}

// List lista convocatorias filtradas, más recientes primero, con sus categorías.
func (r *GrantRepo) List(ctx context.Context, filter catalog.GrantFilter, limit, offset int) ([]*entity.Grant, error) {
	w := grantWhere(filter)
	query := `SELECT ` + grantColumns + ` FROM grants g` + w.String() + grantOrderBy +
		` LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, classify("list grants", err)
	}
	list := make([]*entity.Grant, 0, limit)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			rows.Close()
			return nil, classify("scan grant", err)
		}
		list = append(list, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify("list grants", err)
	}
	if err := r.loadCategories(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count cuenta las convocatorias que cumplen el filtro.
func (r *GrantRepo) Count(ctx context.Context, filter catalog.GrantFilter) (int, error) {
	w := grantWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM grants g`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, classify("count grants", err)
	}
	return n, nil
}

// loadCategories completa Categories de cada convocatoria con una sola consulta.
func (r *GrantRepo) loadCategories(ctx context.Context, grants []*entity.Grant) error {
	if len(grants) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Grant, len(grants))
	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		g.Categories = []entity.CategoryRef{}
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}
	const query = `
		SELECT gc.grant_id, c.id, c.name, c.description
		FROM grant_categories gc
		JOIN categories c ON c.id = gc.category_id
		WHERE gc.grant_id = ANY($1::uuid[])` + categoryOrderBy
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return classify("load grant categories", err)
	}
	defer rows.Close()
	for rows.Next() {
		var grantID string
		var c entity.CategoryRef
		if err := rows.Scan(&grantID, &c.ID, &c.Name, &c.Description); err != nil {
			return classify("scan grant category", err)
		}
		if g, ok := byID[grantID]; ok {
			g.Categories = append(g.Categories, c)
		}
	}
	return classify("load grant categories", rows.Err())
}

func scanGrant(row pgx.Row) (*entity.Grant, error) {
	var g entity.Grant
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Country, &g.Deadline, &g.Requirements,
		&g.FundingAmount, &g.IsActive, &g.Version, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Deadline = g.Deadline.UTC()
	g.CreatedAt = g.CreatedAt.UTC()
	return &g, nil
}
