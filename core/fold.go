package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips Vietnamese diacritics from s: the string is decomposed (NFD), all
// combining marks are removed, the result is recomposed (NFC) and đ/Đ (which has
// no decomposition) is mapped to d/D last. That order makes Fold idempotent and
// stable on partially normalized input. ASCII letters, digits and spaces pass
// through unchanged.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Map(mapDyet, out)
}

func mapDyet(r rune) rune {
	switch r {
	case 'đ':
		return 'd'
	case 'Đ':
		return 'D'
	}
	return r
}
