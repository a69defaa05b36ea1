package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%abc%`, likePattern("abc"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}

func TestCategoryWhere_Busqueda(t *testing.T) {
	w := categoryWhere(catalog.CategoryFilter{})
	assert.Equal(t, "", w.String())
	assert.Empty(t, w.args)

	w = categoryWhere(catalog.CategoryFilter{Search: " beca "})
	assert.Equal(t, " WHERE (c.name ILIKE $1 OR c.description ILIKE $2)", w.String())
	assert.Equal(t, []any{"%beca%", "%beca%"}, w.args)
	assert.Equal(t, "$3", w.next(10))
}

func TestGrantWhere_TodosLosCriterios(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := grantWhere(catalog.GrantFilter{
		CategoryID: "7f1c6c1e-4c1b-4b7e-9a57-0f7b8a1f2d3c",
		Country:    "tan",
		ActiveOnly: true,
		Now:        now,
	})
	assert.Equal(t,
		" WHERE EXISTS (SELECT 1 FROM grant_categories gc WHERE gc.grant_id = g.id AND gc.category_id = $1)"+
			" AND g.country ILIKE $2 AND g.is_active AND g.deadline > $3",
		w.String())
	assert.Equal(t, []any{"7f1c6c1e-4c1b-4b7e-9a57-0f7b8a1f2d3c", "%tan%", now}, w.args)
}

func TestCategoryOrderBy_MismoOrdenQueEnMemoria(t *testing.T) {
	assert.Equal(t, ` ORDER BY c.normalized_name COLLATE "C" ASC, c.name COLLATE "C" ASC, c.id ASC`, categoryOrderBy)
}

func TestGrantWhere_SinCriterios(t *testing.T) {
	w := grantWhere(catalog.GrantFilter{})
	assert.Equal(t, "", w.String())
}

func TestClassify_TraduceErrores(t *testing.T) {
	assert.NoError(t, classify("op", nil))

	err := classify("commit", &pgconn.PgError{Code: codeSerializationFailure})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = classify("query", context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = classify("query", errors.New("syntax error"))
	assert.NotErrorIs(t, err, domain.ErrUnavailable)
	assert.Contains(t, err.Error(), "query: syntax error")

	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: codeUniqueViolation})))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: codeForeignKeyViolation}))
}
