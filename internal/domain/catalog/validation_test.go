package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grants-api/internal/domain"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func validGrant(now time.Time) GrantInput {
	return GrantInput{
		Title:       "Beca Erasmus",
		Description: "Movilidad académica",
		Country:     "España",
		Deadline:    now.Add(24 * time.Hour),
	}
}

func TestValidateCategory_Campos(t *testing.T) {
	assert.NoError(t, ValidateCategory(CategoryInput{Name: "Ciencia"}))

	err := ValidateCategory(CategoryInput{Name: "", Description: strings.Repeat("x", 501)})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")

	// 100 runas multibyte son válidas
	assert.NoError(t, ValidateCategory(CategoryInput{Name: strings.Repeat("ñ", 100)}))
	assert.Error(t, ValidateCategory(CategoryInput{Name: strings.Repeat("ñ", 101)}))
}

func TestCategoryInput_SanitizeRecorta(t *testing.T) {
	in := CategoryInput{Name: "  Arte ", Description: " d "}.Sanitize()
	assert.Equal(t, "Arte", in.Name)
	assert.Equal(t, "d", in.Description)

	assert.Error(t, ValidateCategory(CategoryInput{Name: "   "}.Sanitize()), "nombre solo con espacios es vacío")
}

func TestValidateGrant_Valida(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateGrant(validGrant(now), now, true))
}

func TestValidateGrant_RequeridosYLongitudes(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	in := GrantInput{
		Title:         strings.Repeat("t", 201),
		Country:       strings.Repeat("c", 101),
		Requirements:  strings.Repeat("r", 2001),
		FundingAmount: strings.Repeat("f", 101),
	}
	fields := fieldsOf(t, ValidateGrant(in, now, true))
	for _, f := range []string{"title", "description", "country", "requirements", "fundingAmount", "deadline"} {
		assert.Contains(t, fields, f)
	}
	assert.Equal(t, "es requerido", fields["deadline"])
}

func TestValidateGrant_DeadlineFuturoAlCrear(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	in := validGrant(now)
	in.Deadline = now

	fields := fieldsOf(t, ValidateGrant(in, now, true))
	assert.Equal(t, "debe ser una fecha futura", fields["deadline"])

	// al actualizar se permite un deadline vencido
	in.Deadline = now.Add(-48 * time.Hour)
	assert.NoError(t, ValidateGrant(in, now, false))
}

func TestValidateGrant_CategoryIDsInvalidos(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	in := validGrant(now)
	in.CategoryIDs = []string{"7f1c6c1e-4c1b-4b7e-9a57-0f7b8a1f2d3c", "no-es-uuid", "00000000-0000-0000-0000-000000000000"}

	fields := fieldsOf(t, ValidateGrant(in, now, true))
	assert.NotContains(t, fields, "categoryIds[0]")
	assert.Contains(t, fields, "categoryIds[1]")
	assert.Contains(t, fields, "categoryIds[2]", "el UUID nulo no es un id válido")
}

func TestDistinctIDs_SinDuplicados(t *testing.T) {
	ids := DistinctIDs([]string{
		"7F1C6C1E-4C1B-4B7E-9A57-0F7B8A1F2D3C",
		"7f1c6c1e-4c1b-4b7e-9a57-0f7b8a1f2d3c",
		"a0000000-0000-4000-8000-000000000001",
	})
	assert.Equal(t, []string{
		"7f1c6c1e-4c1b-4b7e-9a57-0f7b8a1f2d3c",
		"a0000000-0000-4000-8000-000000000001",
	}, ids)
	assert.Empty(t, DistinctIDs(nil))
}
