// Package timing reads cue based word timing sources.
package timing

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"ttrace/text"
)

// WordTiming is a single transcript word with its cue time range.
type WordTiming struct {
	Text         string
	StartSeconds float64
	EndSeconds   float64
	WordIndex    int
	PhraseIndex  int
	BlockIndex   int
}

// Cue is one timestamped text segment of the source, multi-line text is
// joined with single spaces.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

const trailingPunct = ",.:;?!"

var reHeader = regexp.MustCompile(`^\s*((?:\d+:)?\d{2}:\d{2}\.\d{3})\s+-->\s+((?:\d+:)?\d{2}:\d{2}\.\d{3})(?:\s.*)?$`)

// ParseCues extracts all cues from the source text, anything which is not
// a cue (preamble, identifiers, notes) is ignored. Result is ordered by cue
// start time, cues with the same start keep source order.
func ParseCues(source string) []Cue {
	var (
		cues  []Cue
		cur   *Cue
		lines []string
	)

	flush := func() {
		if cur != nil {
			cur.Text = strings.Join(lines, " ")
			cues = append(cues, *cur)
		}
		cur, lines = nil, lines[:0]
	}

	for line := range strings.Lines(source) {
		line = strings.TrimRight(line, "\r\n")
		if m := reHeader.FindStringSubmatch(line); m != nil {
			flush()
			start, errS := ParseTimestamp(m[1])
			end, errE := ParseTimestamp(m[2])
			if errS != nil || errE != nil {
				continue
			}
			cur = &Cue{Start: start, End: end}
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if cur != nil {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	flush()

	slices.SortStableFunc(cues, func(a, b Cue) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	return cues
}

// Parse returns per word timings of the source. All words belong to the
// single implicit block and phrase. Malformed or empty source results in
// empty slice.
func Parse(source string) []WordTiming {
	return ParseGrouped(source, Grouping{})
}

// words returns words of the cue after trailing sentence punctuation is
// removed.
func (c Cue) words() []string {
	s := c.Text
	if len(s) > 0 && strings.IndexByte(trailingPunct, s[len(s)-1]) >= 0 {
		s = s[:len(s)-1]
	}
	return text.Words(s)
}

// ParseTimestamp converts "[HH:]MM:SS.mmm" into seconds.
func ParseTimestamp(value string) (float64, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	var hours int
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
		}
		hours, parts = h, parts[1:]
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		return "-" + FormatTimestamp(-seconds)
	}
	ms := int64(seconds*1000 + 0.5)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
