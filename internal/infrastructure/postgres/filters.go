package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/grants-api/internal/domain/catalog"
)

// whereClause acumula condiciones AND con placeholders $n numerados en orden.
type whereClause struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" en cond se reemplaza por el siguiente $n.
func (w *whereClause) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// next reserva el siguiente placeholder para LIMIT/OFFSET.
func (w *whereClause) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// likePattern escapa los comodines de LIKE y envuelve el término en %...%.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// categoryWhere compone el filtro de categorías: search en name OR description (ILIKE).
func categoryWhere(f catalog.CategoryFilter) *whereClause {
	w := &whereClause{}
	if term := strings.TrimSpace(f.Search); term != "" {
		p := likePattern(term)
		w.add(`(c.name ILIKE ? OR c.description ILIKE ?)`, p, p)
	}
	return w
}

// grantWhere compone el filtro de convocatorias (AND entre criterios presentes).
// country es subcadena, nunca igualdad exacta.
func grantWhere(f catalog.GrantFilter) *whereClause {
	w := &whereClause{}
	if f.CategoryID != "" {
		w.add(`EXISTS (SELECT 1 FROM grant_categories gc WHERE gc.grant_id = g.id AND gc.category_id = ?)`, f.CategoryID)
	}
	if country := strings.TrimSpace(f.Country); country != "" {
		w.add(`g.country ILIKE ?`, likePattern(country))
	}
	if f.ActiveOnly {
		w.add(`g.is_active AND g.deadline > ?`, f.Now)
	}
	return w
}

const (
	categoryOrderBy = ` ORDER BY c.normalized_name COLLATE "C" ASC, c.name COLLATE "C" ASC, c.id ASC`
	grantOrderBy    = ` ORDER BY g.created_at DESC, g.id ASC`
)
