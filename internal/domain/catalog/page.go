package catalog

import "math"

// Límites de paginación. Valores fuera de rango se corrigen, nunca producen error.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest página solicitada (1-based).
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize aplica los valores por defecto: page < 1 → 1; pageSize fuera de [1, 100] → 10.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset devuelve el desplazamiento de la primera fila de la página. Asume una petición normalizada.
// Satura en math.MaxInt en lugar de desbordar con páginas muy grandes.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Beyond informa si la página queda después de la última con datos para total coincidencias.
// Con total = 0 toda página está vacía.
func (p PageRequest) Beyond(total int) bool {
	return p.Page > TotalPages(total, p.PageSize)
}

// Limit es un alias de PageSize para las consultas LIMIT/OFFSET.
func (p PageRequest) Limit() int {
	return p.PageSize
}

// Page es el sobre de paginación devuelto por los listados.
type Page[T any] struct {
	Items           []T
	TotalCount      int
	Page            int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPage arma el sobre a partir de los elementos ya recortados y el total de coincidencias.
// Una página más allá de TotalPages produce Items vacío, no un error.
func NewPage[T any](items []T, total int, req PageRequest) Page[T] {
	req = req.Normalize()
	if items == nil {
		items = []T{}
	}
	if total < 0 {
		total = 0
	}
	totalPages := TotalPages(total, req.PageSize)
	return Page[T]{
		Items:           items,
		TotalCount:      total,
		Page:            req.Page,
		PageSize:        req.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
	}
}

// TotalPages calcula ceil(total / pageSize); 0 cuando no hay resultados.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Map transforma los elementos conservando los metadatos del sobre.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[U]{
		Items:           items,
		TotalCount:      p.TotalCount,
		Page:            p.Page,
		PageSize:        p.PageSize,
		TotalPages:      p.TotalPages,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}
