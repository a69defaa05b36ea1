package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error, la transacción se revierte y no queda ninguna escritura parcial.
type TxRunner interface {
	// Run abre una transacción de lectura/escritura.
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		grantRepo repository.GrantRepository,
	) error) error
	// View abre una transacción de solo lectura con una instantánea consistente (conteo + página).
	View(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		grantRepo repository.GrantRepository,
	) error) error
}

// Clock permite fijar el instante actual en tests.
type Clock func() time.Time

// SystemClock devuelve la hora actual en UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// nextUpdatedAt devuelve now salvo que retroceda respecto a la última marca conocida,
// de modo que updated_at nunca decrece.
func nextUpdatedAt(now, createdAt time.Time, prev *time.Time) time.Time {
	floor := createdAt
	if prev != nil && prev.After(floor) {
		floor = *prev
	}
	if now.Before(floor) {
		return floor
	}
	return now
}

// validateID rechaza identificadores que no son UUID antes de tocar el almacenamiento.
func validateID(id string) error {
	if catalog.IsValidID(id) {
		return nil
	}
	verr := &domain.ValidationError{}
	verr.Add("id", "no es un identificador válido")
	return verr
}
