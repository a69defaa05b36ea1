package catalog

import (
	"strings"
	"time"

	"github.com/jhoicas/grants-api/internal/domain/entity"
)

// CategoryFilter criterios opcionales para listar categorías.
type CategoryFilter struct {
	Search string // subcadena en name o description, sin distinguir mayúsculas
}

// Matches evalúa el filtro en memoria con la misma semántica que la consulta SQL.
func (f CategoryFilter) Matches(c *entity.Category) bool {
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}
	return containsFold(c.Name, term) || containsFold(c.Description, term)
}

// GrantFilter criterios opcionales para listar convocatorias (AND entre los presentes).
type GrantFilter struct {
	CategoryID string // vacío = sin filtro
	Country    string // subcadena, sin distinguir mayúsculas
	ActiveOnly bool
	Now        time.Time // instante de referencia para ActiveOnly, fijado una vez por petición
}

// NewGrantFilter construye el filtro con ActiveOnly=true por defecto y Now=now.
func NewGrantFilter(now time.Time) GrantFilter {
	return GrantFilter{ActiveOnly: true, Now: now}
}

// Matches evalúa el filtro sobre una convocatoria y sus IDs de categoría.
func (f GrantFilter) Matches(g *entity.Grant, categoryIDs []string) bool {
	if f.CategoryID != "" {
		found := false
		for _, id := range categoryIDs {
			if id == f.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if country := strings.TrimSpace(f.Country); country != "" && !containsFold(g.Country, country) {
		return false
	}
	if f.ActiveOnly && !g.IsOpen(f.Now) {
		return false
	}
	return true
}

// CategoryLess orden total de categorías: nombre sin distinguir mayúsculas (clave normalizada),
// luego name y por último id, comparando bytes. El store SQL ordena igual con COLLATE "C".
func CategoryLess(a, b *entity.Category) bool {
	ka, kb := sortKey(a), sortKey(b)
	if ka != kb {
		return ka < kb
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func sortKey(c *entity.Category) string {
	if c.NormalizedName != "" {
		return c.NormalizedName
	}
	return NormalizeName(c.Name)
}

// GrantLess orden total de convocatorias: created_at DESC (más recientes primero), id ASC.
func GrantLess(a, b *entity.Grant) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
