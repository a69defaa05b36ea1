package catalog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/grants-api/internal/domain"
)

// Longitudes máximas (en runas).
const (
	MaxCategoryNameLen        = 100
	MaxCategoryDescriptionLen = 500
	MaxGrantTitleLen          = 200
	MaxGrantDescriptionLen    = 5000
	MaxGrantCountryLen        = 100
	MaxGrantRequirementsLen   = 2000
	MaxGrantFundingAmountLen  = 100
)

// CategoryInput datos editables de una categoría.
type CategoryInput struct {
	Name        string
	Description string
}

// GrantInput datos editables de una convocatoria.
type GrantInput struct {
	Title         string
	Description   string
	Country       string
	Deadline      time.Time
	Requirements  string
	FundingAmount string
	IsActive      *bool // nil = true al crear, sin cambios al actualizar
	CategoryIDs   []string
}

// Sanitize recorta espacios de los campos de texto.
func (in CategoryInput) Sanitize() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// Sanitize recorta espacios de los campos de texto e IDs.
func (in GrantInput) Sanitize() GrantInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Country = strings.TrimSpace(in.Country)
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.FundingAmount = strings.TrimSpace(in.FundingAmount)
	ids := make([]string, 0, len(in.CategoryIDs))
	for _, id := range in.CategoryIDs {
		ids = append(ids, strings.TrimSpace(id))
	}
	in.CategoryIDs = ids
	return in
}

// ValidateCategory valida una categoría ya sanitizada.
func ValidateCategory(in CategoryInput) error {
	verr := &domain.ValidationError{}
	required(verr, "name", in.Name)
	maxLen(verr, "name", in.Name, MaxCategoryNameLen)
	maxLen(verr, "description", in.Description, MaxCategoryDescriptionLen)
	return verr.OrNil()
}

// ValidateGrant valida una convocatoria ya sanitizada. Al crear (creating=true) el deadline
// debe ser estrictamente posterior a now; al actualizar se permite conservar uno vencido.
func ValidateGrant(in GrantInput, now time.Time, creating bool) error {
	verr := &domain.ValidationError{}
	required(verr, "title", in.Title)
	maxLen(verr, "title", in.Title, MaxGrantTitleLen)
	required(verr, "description", in.Description)
	maxLen(verr, "description", in.Description, MaxGrantDescriptionLen)
	required(verr, "country", in.Country)
	maxLen(verr, "country", in.Country, MaxGrantCountryLen)
	maxLen(verr, "requirements", in.Requirements, MaxGrantRequirementsLen)
	maxLen(verr, "fundingAmount", in.FundingAmount, MaxGrantFundingAmountLen)

	switch {
	case in.Deadline.IsZero():
		verr.Add("deadline", "es requerido")
	case creating && !in.Deadline.After(now):
		verr.Add("deadline", "debe ser una fecha futura")
	}

	for i, id := range in.CategoryIDs {
		if !IsValidID(id) {
			verr.Add(fmt.Sprintf("categoryIds[%d]", i), "no es un identificador válido")
		}
	}
	return verr.OrNil()
}

// IsValidID informa si s es un UUID no nulo.
func IsValidID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id != uuid.Nil
}

// CanonicalID devuelve la forma canónica (minúsculas con guiones) de un UUID válido, o s sin cambios.
func CanonicalID(s string) string {
	id, err := uuid.Parse(s)
	if err != nil {
		return s
	}
	return id.String()
}

// DistinctIDs canonicaliza y elimina duplicados conservando el primer orden de aparición.
func DistinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		key := CanonicalID(id)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func required(verr *domain.ValidationError, field, value string) {
	if value == "" {
		verr.Add(field, "es requerido")
	}
}

func maxLen(verr *domain.ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		verr.Add(field, fmt.Sprintf("no puede superar %d caracteres", max))
	}
}
