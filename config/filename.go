package config

import (
	"strings"
	"unicode"
)

// CleanFileName makes name usable as single path segment. Characters not
// allowed by the platform are replaced with underscore, surrounding spaces
// and leading dots are dropped.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenChars, sym) {
			return '_'
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	if reservedName(out) {
		out = "_" + out
	}
	return out
}
