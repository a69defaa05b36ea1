package entity

import "time"

// Grant representa una convocatoria (beca, subvención o vacante) publicada en el catálogo.
// Está activa si IsActive y Deadline es posterior al momento de la consulta.
type Grant struct {
	ID            string
	Title         string
	Description   string
	Country       string
	Deadline      time.Time
	Requirements  string
	FundingAmount string // texto libre ("hasta 10.000 EUR")
	IsActive      bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	Categories    []CategoryRef
}

// IsOpen indica si la convocatoria acepta postulaciones en el instante now.
func (g *Grant) IsOpen(now time.Time) bool {
	return g.IsActive && g.Deadline.After(now)
}

// CategoryIDs devuelve los IDs de las categorías asociadas.
func (g *Grant) CategoryIDs() []string {
	ids := make([]string, 0, len(g.Categories))
	for _, c := range g.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
