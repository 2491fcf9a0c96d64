package text

import (
	"iter"
	"strings"
	"unicode"
)

// Segment is a run of either word or whitespace symbols.
type Segment struct {
	Text  string
	Space bool
}

// Segments returns an iterator over alternating word and whitespace runs of
// the input. NBSP is part of the word.
func Segments(in string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		start, space := 0, false
		for idx, sym := range in {
			sep := isSeparator(sym, false)
			if idx == 0 {
				space = sep
				continue
			}
			if sep != space {
				if !yield(Segment{Text: in[start:idx], Space: space}) {
					return
				}
				start, space = idx, sep
			}
		}
		if start < len(in) {
			yield(Segment{Text: in[start:], Space: space})
		}
	}
}

// Words returns non empty whitespace delimited words of the input.
func Words(in string) []string {
	return strings.FieldsFunc(in, func(r rune) bool {
		return isSeparator(r, true)
	})
}

func isSeparator(r rune, ignoreNBSP bool) bool {
	if uint32(r) <= unicode.MaxLatin1 {
		switch r {
		// exclude NBSP from the list of white space separators for latin1 symbols
		case '\t', '\n', '\v', '\f', '\r', ' ', 0x85:
			return true
		case 0xA0: // NBSP
			return ignoreNBSP
		}
		return false
	}
	return unicode.IsSpace(r)
}
