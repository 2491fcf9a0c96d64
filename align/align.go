// Package align matches document words to transcript word timings.
package align

import (
	"ttrace/text"
	"ttrace/timing"
)

// Link connects document token with word timing, both are indexes into the
// slices given to Align.
type Link struct {
	Token  int
	Timing int
}

// Align walks document tokens in order keeping single forward cursor into
// timings. Every token is compared with timings starting at the cursor and
// up to fuzziness positions ahead of it. On match the link is recorded and
// the cursor moves past the matched timing, otherwise token is skipped and
// cursor stays. Tokens left when timings are exhausted stay unmatched.
func Align(tokens []string, timings []timing.WordTiming, fuzziness int) []Link {
	if fuzziness < 0 {
		fuzziness = 0
	}

	normalized := make([]string, len(timings))
	for i := range timings {
		normalized[i] = text.Normalize(timings[i].Text)
	}

	var (
		links  []Link
		cursor int
	)
	for i, token := range tokens {
		if cursor >= len(timings) {
			break
		}
		if j := match(text.Normalize(token), normalized, cursor, min(cursor+fuzziness, len(timings)-1)); j >= 0 {
			links = append(links, Link{Token: i, Timing: j})
			cursor = j + 1
		}
	}
	return links
}

// match returns first position in [from, to] where candidate equals word,
// or -1.
func match(word string, candidates []string, from, to int) int {
	for j := from; j <= to; j++ {
		if candidates[j] == word {
			return j
		}
	}
	return -1
}

// Coverage reports share of timings which got linked, 1 when everything
// aligned.
func Coverage(links []Link, timings []timing.WordTiming) float64 {
	if len(timings) == 0 {
		return 0
	}
	return float64(len(links)) / float64(len(timings))
}
