package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Text trims s, drops NUL bytes, and converts it to NFC so titles compare consistently.
func Text(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(strings.TrimSpace(s))
}

// Fold returns the case-folded, normalized form of s for case-insensitive matching.
// A Caser is stateful, so one is created per call.
func Fold(s string) string {
	return cases.Fold().String(Text(s))
}

// LanguageCode reduces a locale such as "en-US" or "pt_BR" to its lowercase language part.
func LanguageCode(raw string) string {
	s := strings.ToLower(Text(raw))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	return s
}
