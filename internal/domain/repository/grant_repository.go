package repository

import (
	"context"

	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/entity"
)

// GrantRepository define el puerto de persistencia para Grant (DIP).
type GrantRepository interface {
	// Create inserta la convocatoria sin categorías; usar ReplaceCategories después.
	Create(ctx context.Context, grant *entity.Grant) error
	// GetByID devuelve la convocatoria con sus categorías, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Grant, error)
	// Update persiste los campos si la versión almacenada es expectedVersion; si no, domain.ErrConflict.
	Update(ctx context.Context, grant *entity.Grant, expectedVersion int) error
	// Delete devuelve domain.ErrNotFound si no existe. Las asociaciones caen en cascada.
	Delete(ctx context.Context, id string) error
	// ReplaceCategories borra todas las asociaciones de la convocatoria e inserta categoryIDs.
	ReplaceCategories(ctx context.Context, grantID string, categoryIDs []string) error
	List(ctx context.Context, filter catalog.GrantFilter, limit, offset int) ([]*entity.Grant, error)
	Count(ctx context.Context, filter catalog.GrantFilter) (int, error)
}
