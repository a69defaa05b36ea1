package catalog

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/grants-api/internal/domain/entity"
)

func TestCategoryFilter_Coincide(t *testing.T) {
	c := &entity.Category{Name: "Ciencia", Description: "Becas de investigación"}

	assert.True(t, CategoryFilter{}.Matches(c))
	assert.True(t, CategoryFilter{Search: "cien"}.Matches(c))
	assert.True(t, CategoryFilter{Search: "INVESTIG"}.Matches(c), "también busca en description")
	assert.True(t, CategoryFilter{Search: "  "}.Matches(c), "búsqueda en blanco no filtra")
	assert.False(t, CategoryFilter{Search: "arte"}.Matches(c))
}

func TestGrantFilter_Coincide(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	open := &entity.Grant{Country: "Kazakhstan", IsActive: true, Deadline: now.Add(time.Hour)}
	expired := &entity.Grant{Country: "Chile", IsActive: true, Deadline: now.Add(-time.Hour)}
	inactive := &entity.Grant{Country: "Chile", IsActive: false, Deadline: now.Add(time.Hour)}
	atDeadline := &entity.Grant{Country: "Chile", IsActive: true, Deadline: now}

	f := NewGrantFilter(now)
	assert.True(t, f.Matches(open, nil))
	assert.False(t, f.Matches(expired, nil))
	assert.False(t, f.Matches(inactive, nil))
	assert.False(t, f.Matches(atDeadline, nil), "deadline == now no está abierta")

	all := GrantFilter{Now: now}
	assert.True(t, all.Matches(expired, nil))
	assert.True(t, all.Matches(inactive, nil))

	assert.True(t, GrantFilter{Country: "tan", Now: now}.Matches(open, nil), "country es subcadena")
	assert.True(t, GrantFilter{Country: "KAZ", Now: now}.Matches(open, nil))
	assert.False(t, GrantFilter{Country: "Peru", Now: now}.Matches(open, nil))

	assert.True(t, GrantFilter{CategoryID: "c1", Now: now}.Matches(open, []string{"c0", "c1"}))
	assert.False(t, GrantFilter{CategoryID: "c9", Now: now}.Matches(open, []string{"c0", "c1"}))
}

func TestOrden_ConvocatoriasYCategorias(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := &entity.Grant{ID: "b", CreatedAt: t0.Add(time.Minute)}
	older := &entity.Grant{ID: "a", CreatedAt: t0}
	tieA := &entity.Grant{ID: "a", CreatedAt: t0}
	tieB := &entity.Grant{ID: "b", CreatedAt: t0}

	assert.True(t, GrantLess(newer, older))
	assert.False(t, GrantLess(older, newer))
	assert.True(t, GrantLess(tieA, tieB), "empate se resuelve por id")

	assert.True(t, CategoryLess(&entity.Category{ID: "2", Name: "Arte"}, &entity.Category{ID: "1", Name: "Becas"}))
	assert.True(t, CategoryLess(&entity.Category{ID: "1", Name: "Arte"}, &entity.Category{ID: "2", Name: "Arte"}))
}

func TestCategoryLess_SinDistinguirMayusculas(t *testing.T) {
	cats := []*entity.Category{
		{ID: "1", Name: "cherry"},
		{ID: "2", Name: "Banana"},
		{ID: "3", Name: "apple"},
		{ID: "4", Name: "Apple", NormalizedName: NormalizeName("Apple")},
	}
	sort.Slice(cats, func(i, j int) bool { return CategoryLess(cats[i], cats[j]) })

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	// misma clave: desempata name por bytes ("A" < "a")
	assert.Equal(t, []string{"Apple", "apple", "Banana", "cherry"}, names)
}
