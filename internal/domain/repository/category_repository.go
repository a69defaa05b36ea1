package repository

import (
	"context"

	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los métodos Get/Find devuelven (nil, nil) cuando no hay fila.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Category, error)
	// FindByNormalizedName busca por clave case-insensitive, ignorando excludeID (vacío = ninguno).
	FindByNormalizedName(ctx context.Context, normalized, excludeID string) (*entity.Category, error)
	// Update persiste name/description si la versión almacenada es expectedVersion; si no, domain.ErrConflict.
	Update(ctx context.Context, category *entity.Category, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter catalog.CategoryFilter, limit, offset int) ([]*entity.Category, error)
	Count(ctx context.Context, filter catalog.CategoryFilter) (int, error)
	CountGrants(ctx context.Context, categoryID string) (int, error)
	ListGrants(ctx context.Context, categoryID string) ([]entity.GrantRef, error)
	// ResolveRefs devuelve las categorías existentes entre ids y las bloquea en modo compartido
	// para que no puedan borrarse mientras se asocian.
	ResolveRefs(ctx context.Context, ids []string) ([]entity.CategoryRef, error)
}
