package normalize

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccentsTransformer decomposes characters and removes the combining
// marks, so "Hipódromo" becomes "Hipodromo" and "Nuñez" becomes "Nunez".
var stripAccentsTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripAccents transliterates accented characters to their unaccented
// equivalents. Input that fails to transform is returned unchanged.
func StripAccents(s string) string {
	out, _, err := transform.String(stripAccentsTransformer, s)
	if err != nil {
		return s
	}
	return out
}
