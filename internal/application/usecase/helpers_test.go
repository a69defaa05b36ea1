package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grants-api/internal/application/dto"
	"github.com/jhoicas/grants-api/internal/application/usecase"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
	"github.com/jhoicas/grants-api/internal/infrastructure/memory"
)

// fakeClock reloj manual para fijar y avanzar el tiempo en los tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

type fixture struct {
	ctx        context.Context
	clock      *fakeClock
	store      *memory.Store
	categories *usecase.CategoryUseCase
	grants     *usecase.GrantUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := newFakeClock()
	store := memory.NewStore()
	return &fixture{
		ctx:        context.Background(),
		clock:      clock,
		store:      store,
		categories: usecase.NewCategoryUseCase(store, clock.Now),
		grants:     usecase.NewGrantUseCase(store, clock.Now),
	}
}

func (f *fixture) category(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	c, err := f.categories.Create(f.ctx, catalog.CategoryInput{Name: name, Description: "desc " + name})
	require.NoError(t, err)
	return c
}

func (f *fixture) grantInput(title, country string, categoryIDs ...string) catalog.GrantInput {
	return catalog.GrantInput{
		Title:         title,
		Description:   "Descripción de " + title,
		Country:       country,
		Deadline:      f.clock.Now().Add(30 * 24 * time.Hour),
		Requirements:  "CV",
		FundingAmount: "10.000 EUR",
		CategoryIDs:   categoryIDs,
	}
}

func (f *fixture) grant(t *testing.T, title, country string, categoryIDs ...string) *dto.GrantResponse {
	t.Helper()
	g, err := f.grants.Create(f.ctx, f.grantInput(title, country, categoryIDs...))
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	return g
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
