package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey folds values into one lower-case, accent-free string, so that
// "José" and "jose" match on any database without ILIKE or unaccent.
func SearchKey(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = FoldText(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// FoldText lower-cases s, strips combining marks and collapses whitespace.
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
