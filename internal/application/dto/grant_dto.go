package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
)

// deadlineLayouts formatos aceptados para deadline: RFC 3339 y los que envía un <input type="date|datetime-local">.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// GrantRequest entrada para crear o actualizar una convocatoria.
type GrantRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Country       string   `json:"country"`
	Deadline      string   `json:"deadline"`
	Requirements  string   `json:"requirements"`
	FundingAmount string   `json:"fundingAmount"`
	IsActive      *bool    `json:"isActive,omitempty"`
	CategoryIDs   []string `json:"categoryIds"`
	Version       *int     `json:"version,omitempty"`
}

// ToInput convierte la petición en la entrada de dominio. Un deadline con formato
// inválido se reporta como error de campo. Fechas sin zona se interpretan en UTC.
func (r GrantRequest) ToInput() (catalog.GrantInput, error) {
	in := catalog.GrantInput{
		Title:         r.Title,
		Description:   r.Description,
		Country:       r.Country,
		Requirements:  r.Requirements,
		FundingAmount: r.FundingAmount,
		IsActive:      r.IsActive,
		CategoryIDs:   r.CategoryIDs,
	}
	raw := strings.TrimSpace(r.Deadline)
	if raw == "" {
		return in, nil // la validación de dominio reporta el campo requerido
	}
	deadline, ok := ParseDeadline(raw)
	if !ok {
		verr := &domain.ValidationError{}
		verr.Add("deadline", "formato de fecha inválido")
		return in, verr
	}
	in.Deadline = deadline
	return in, nil
}

// ParseDeadline interpreta los formatos de fecha aceptados.
func ParseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CategorySummary categoría embebida en una convocatoria.
type CategorySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GrantResponse salida de una convocatoria.
type GrantResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Country       string            `json:"country"`
	Deadline      time.Time         `json:"deadline"`
	Requirements  string            `json:"requirements"`
	FundingAmount string            `json:"fundingAmount"`
	IsActive      bool              `json:"isActive"`
	Version       int               `json:"version"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
	Categories    []CategorySummary `json:"categories"`
}

// GrantListResponse lista paginada de convocatorias.
type GrantListResponse = PagedResponse[GrantResponse]
