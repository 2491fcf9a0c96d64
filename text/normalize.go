// Package text provides text level helpers used when matching document words
// to transcript words.
package text

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces word to a form suitable for comparison: case folded,
// diacritics removed, punctuation and whitespace dropped.
func Normalize(in string) string {
	// transformers keep state, chain has to be created for every call
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSpace(r)
		})),
		cases.Fold(),
		norm.NFC,
	)
	out, _, err := transform.String(t, in)
	if err != nil {
		return in
	}
	return out
}
