package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFold decomposes characters and strips combining marks, so
// "crème fraîche" and "creme fraiche" normalize to the same string.
var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases, strips accents and collapses whitespace.
// Product names, queries and establishment codes all go through this
// once, so comparisons later on are plain string operations.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(accentFold, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}
