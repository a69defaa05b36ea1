package entity

import "time"

// Category agrupa convocatorias (relación muchos-a-muchos vía grant_categories).
type Category struct {
	ID             string
	Name           string
	NormalizedName string // clave única case-insensitive, ver catalog.NormalizeName
	Description    string
	Version        int // token de concurrencia optimista
	CreatedAt      time.Time
	UpdatedAt      *time.Time // nil hasta la primera actualización
}

// CategoryRef es la vista mínima de una categoría embebida en una convocatoria.
type CategoryRef struct {
	ID          string
	Name        string
	Description string
}

// GrantRef es la vista mínima de una convocatoria listada dentro de una categoría.
type GrantRef struct {
	ID    string
	Title string
}
