package dto

import (
	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
)

// PageRequest paginación para listados (query ?page=&pageSize=).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

// ToDomain convierte y normaliza (page < 1 → 1, pageSize fuera de [1,100] → 10).
func (p PageRequest) ToDomain() catalog.PageRequest {
	return catalog.PageRequest{Page: p.Page, PageSize: p.PageSize}.Normalize()
}

// PagedResponse sobre de paginación que consume el front-end.
type PagedResponse[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagedResponse mapea un catalog.Page a su representación JSON.
func NewPagedResponse[E, T any](p catalog.Page[E], fn func(E) T) PagedResponse[T] {
	mapped := catalog.Map(p, fn)
	return PagedResponse[T]{
		Items:           mapped.Items,
		TotalCount:      mapped.TotalCount,
		Page:            mapped.Page,
		PageSize:        mapped.PageSize,
		TotalPages:      mapped.TotalPages,
		HasNextPage:     mapped.HasNextPage,
		HasPreviousPage: mapped.HasPreviousPage,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}
