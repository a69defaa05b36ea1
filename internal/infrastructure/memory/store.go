// Package memory implementa los puertos de persistencia en memoria (DB_DRIVER=memory).
// Cada transacción trabaja sobre una copia del estado que solo se publica si fn no falla.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/grants-api/internal/application/usecase"
	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/entity"
	"github.com/jhoicas/grants-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*Store)(nil)

// errReadOnly se devuelve si se intenta escribir dentro de View.
var errReadOnly = errors.New("memory: escritura en transacción de solo lectura")

type state struct {
	categories map[string]entity.Category
	grants     map[string]entity.Grant
	links      map[string]map[string]struct{} // grantID -> categoryIDs
}

func newState() *state {
	return &state{
		categories: map[string]entity.Category{},
		grants:     map[string]entity.Grant{},
		links:      map[string]map[string]struct{}{},
	}
}

func (s *state) clone() *state {
	out := &state{
		categories: make(map[string]entity.Category, len(s.categories)),
		grants:     make(map[string]entity.Grant, len(s.grants)),
		links:      make(map[string]map[string]struct{}, len(s.links)),
	}
	for id, c := range s.categories {
		out.categories[id] = c
	}
	for id, g := range s.grants {
		out.grants[id] = g
	}
	for id, set := range s.links {
		cp := make(map[string]struct{}, len(set))
		for k := range set {
			cp[k] = struct{}{}
		}
		out.links[id] = cp
	}
	return out
}

// Store serializa las escrituras con un mutex; las lecturas concurrentes comparten RLock.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(repository.CategoryRepository, repository.GrantRepository) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(domain.ErrUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(&CategoryRepo{st: work}, &GrantRepo{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// View ejecuta fn con repositorios de solo lectura sobre el estado publicado.
func (s *Store) View(ctx context.Context, fn func(repository.CategoryRepository, repository.GrantRepository) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(domain.ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&CategoryRepo{st: s.st, readOnly: true}, &GrantRepo{st: s.st, readOnly: true})
}

// Ping siempre responde; el almacenamiento en memoria no tiene conexión que perder.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// window aplica LIMIT/OFFSET sobre una secuencia ya ordenada.
func window[T any](all []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) || limit <= 0 {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]T, end-offset)
	copy(out, all[offset:end])
	return out
}
