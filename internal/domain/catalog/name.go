package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName devuelve la clave de unicidad de un nombre de categoría:
// recorta espacios, normaliza a NFC y aplica case folding Unicode.
// "Educación", "EDUCACIÓN" y "educación" producen la misma clave.
func NormalizeName(name string) string {
	s := norm.NFC.String(strings.TrimSpace(name))
	return cases.Fold().String(s)
}
