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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `c.id, c.name, c.normalized_name, c.description, c.version, c.created_at, c.updated_at`

// CategoryRepo implementa el puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. El índice único sobre normalized_name es la autoridad final.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const query = `
		INSERT INTO categories (id, name, normalized_name, description, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.NormalizedName, c.Description, c.Version, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return classify("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, "get category", `SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1`, id)
}

// GetByIDForUpdate obtiene la categoría bloqueando la fila hasta el fin de la transacción.
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, "lock category", `SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1 FOR UPDATE`, id)
}

// FindByNormalizedName busca otra categoría con la misma clave de nombre.
func (r *CategoryRepo) FindByNormalizedName(ctx context.Context, normalized, excludeID string) (*entity.Category, error) {
	if excludeID == "" {
		return r.getOne(ctx, "find category by name",
			`SELECT `+categoryColumns+` FROM categories c WHERE c.normalized_name = $1`, normalized)
	}
	return r.getOne(ctx, "find category by name",
		`SELECT `+categoryColumns+` FROM categories c WHERE c.normalized_name = $1 AND c.id <> $2`, normalized, excludeID)
}

// Update persiste name/description/updated_at/version si la versión almacenada coincide.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category, expectedVersion int) error {
	const query = `
		UPDATE categories
		SET name = $2, normalized_name = $3, description = $4, version = $5, updated_at = $6
		WHERE id = $1 AND version = $7`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.NormalizedName, c.Description, c.Version, c.UpdatedAt, expectedVersion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return classify("update category", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, c.ID)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return classify("delete category", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías filtradas, ordenadas por nombre e id.
func (r *CategoryRepo) List(ctx context.Context, filter catalog.CategoryFilter, limit, offset int) ([]*entity.Category, error) {
	w := categoryWhere(filter)
	query := `SELECT ` + categoryColumns + ` FROM categories c` + w.String() + categoryOrderBy +
		` LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, classify("list categories", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0, limit)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, classify("scan category", err)
		}
		list = append(list, c)
	}
	return list, classify("list categories", rows.Err())
}

// Count cuenta las categorías que cumplen el filtro.
func (r *CategoryRepo) Count(ctx context.Context, filter catalog.CategoryFilter) (int, error) {
	w := categoryWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories c`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, classify("count categories", err)
	}
	return n, nil
}

// CountGrants cuenta las convocatorias asociadas a la categoría.
func (r *CategoryRepo) CountGrants(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM grant_categories WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, classify("count category grants", err)
	}
	return n, nil
}

// ListGrants lista las convocatorias asociadas (más recientes primero).
func (r *CategoryRepo) ListGrants(ctx context.Context, categoryID string) ([]entity.GrantRef, error) {
	const query = `
		SELECT g.id, g.title
		FROM grant_categories gc
		JOIN grants g ON g.id = gc.grant_id
		WHERE gc.category_id = $1
		ORDER BY g.created_at DESC, g.id ASC`
	rows, err := r.q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, classify("list category grants", err)
	}
	defer rows.Close()
	refs := []entity.GrantRef{}
	for rows.Next() {
		var g entity.GrantRef
		if err := rows.Scan(&g.ID, &g.Title); err != nil {
			return nil, classify("scan grant ref", err)
		}
		refs = append(refs, g)
	}
	return refs, classify("list category grants", rows.Err())
}

// ResolveRefs devuelve las categorías existentes entre ids con bloqueo FOR SHARE:
// un DELETE concurrente de esas categorías espera al commit de la asociación.
func (r *CategoryRepo) ResolveRefs(ctx context.Context, ids []string) ([]entity.CategoryRef, error) {
	if len(ids) == 0 {
		return []entity.CategoryRef{}, nil
	}
	const query = `
		SELECT c.id, c.name, c.description
		FROM categories c
		WHERE c.id = ANY($1::uuid[])` + categoryOrderBy + `
		FOR SHARE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, classify("resolve categories", err)
	}
	defer rows.Close()
	refs := []entity.CategoryRef{}
	for rows.Next() {
		var c entity.CategoryRef
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, classify("scan category ref", err)
		}
		refs = append(refs, c)
	}
	return refs, classify("resolve categories", rows.Err())
}

func (r *CategoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(op, err)
	}
	return c, nil
}

// missingOrConflict distingue, tras un UPDATE sin filas, si la fila no existe o cambió de versión.
func (r *CategoryRepo) missingOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists); err != nil {
		return classify("check category", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.NormalizedName, &c.Description, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
