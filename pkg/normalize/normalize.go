package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Key normaliza un nombre libre para usarse como llave de deduplicación:
// recorta espacios, colapsa espacios internos, quita diacríticos y pasa a minúsculas.
// "  Médico   General " y "medico general" producen la misma llave.
func Key(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// La transformación solo falla con UTF-8 inválido; en ese caso se
		// dedupe con el texto tal cual.
		folded = s
	}
	return strings.ToLower(folded)
}

// Clean recorta y colapsa espacios conservando mayúsculas y acentos,
// para guardar el nombre con la presentación que capturó el usuario.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
