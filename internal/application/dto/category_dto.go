package dto

import (
	"time"

	"github.com/jhoicas/grants-api/internal/domain/catalog"
)

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     *int   `json:"version,omitempty"` // solo en PUT; si se envía y no coincide → 409
}

// ToInput convierte la petición en la entrada de dominio.
func (r CategoryRequest) ToInput() catalog.CategoryInput {
	return catalog.CategoryInput{Name: r.Name, Description: r.Description}
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// GrantSummary referencia corta de una convocatoria asociada.
type GrantSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CategoryDetailResponse categoría con sus convocatorias asociadas.
type CategoryDetailResponse struct {
	CategoryResponse
	GrantCount int            `json:"grantCount"`
	Grants     []GrantSummary `json:"grants"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse = PagedResponse[CategoryResponse]
