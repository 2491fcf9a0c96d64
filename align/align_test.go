package align

import (
	"slices"
	"testing"

	"ttrace/timing"
)

func timings(words ...string) []timing.WordTiming {
	result := make([]timing.WordTiming, 0, len(words))
	for i, w := range words {
		result = append(result, timing.WordTiming{Text: w, StartSeconds: float64(i), WordIndex: i})
	}
	return result
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		timings   []string
		fuzziness int
		want      []Link
	}{
		{
			name:      "skip document only word",
			tokens:    []string{"Hello", "there", "world"},
			timings:   []string{"Hello", "world"},
			fuzziness: 1,
			want:      []Link{{0, 0}, {2, 1}},
		},
		{
			name:      "exact positional match only",
			tokens:    []string{"Hello", "there", "world"},
			timings:   []string{"Hello", "world"},
			fuzziness: 0,
			want:      []Link{{0, 0}, {2, 1}},
		},
		{
			name:      "transcript only word needs lookahead",
			tokens:    []string{"one", "three"},
			timings:   []string{"one", "two", "three"},
			fuzziness: 0,
			want:      []Link{{0, 0}},
		},
		{
			name:      "lookahead skips transcript only word",
			tokens:    []string{"one", "three"},
			timings:   []string{"one", "two", "three"},
			fuzziness: 1,
			want:      []Link{{0, 0}, {1, 2}},
		},
		{
			name:      "window is inclusive",
			tokens:    []string{"d"},
			timings:   []string{"a", "b", "c", "d"},
			fuzziness: 3,
			want:      []Link{{0, 3}},
		},
		{
			name:      "window too small",
			tokens:    []string{"d"},
			timings:   []string{"a", "b", "c", "d"},
			fuzziness: 2,
			want:      nil,
		},
		{
			name:      "normalization",
			tokens:    []string{"«Café,", "NAÏVE!"},
			timings:   []string{"cafe", "naive"},
			fuzziness: 0,
			want:      []Link{{0, 0}, {1, 1}},
		},
		{
			name:      "duplicates take earliest",
			tokens:    []string{"the", "the"},
			timings:   []string{"a", "the", "the"},
			fuzziness: 2,
			want:      []Link{{0, 1}, {1, 2}},
		},
		{
			name:      "timings exhausted",
			tokens:    []string{"a", "b", "c"},
			timings:   []string{"a"},
			fuzziness: 5,
			want:      []Link{{0, 0}},
		},
		{
			name:      "negative fuzziness",
			tokens:    []string{"a", "b"},
			timings:   []string{"a", "b"},
			fuzziness: -3,
			want:      []Link{{0, 0}, {1, 1}},
		},
		{
			name:      "no timings",
			tokens:    []string{"a"},
			fuzziness: 1,
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.tokens, timings(tt.timings...), tt.fuzziness)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Align() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlign_IdenticalSequences(t *testing.T) {
	words := []string{"It", "was", "a", "bright", "cold", "day", "in", "April,", "and", "the", "clocks"}
	for fuzziness := range 4 {
		links := Align(words, timings(words...), fuzziness)
		if len(links) != len(words) {
			t.Fatalf("fuzziness %d: %d links, want %d", fuzziness, len(links), len(words))
		}
		for i, l := range links {
			if l.Token != i || l.Timing != i {
				t.Errorf("fuzziness %d: link %d = %v", fuzziness, i, l)
			}
		}
		if c := Coverage(links, timings(words...)); c != 1 {
			t.Errorf("Coverage() = %v, want 1", c)
		}
	}
}

func TestAlign_Idempotent(t *testing.T) {
	tokens := []string{"a", "x", "b", "c", "y", "d"}
	wts := timings("a", "b", "z", "c", "d")

	first := Align(tokens, wts, 2)
	second := Align(tokens, wts, 2)
	if !slices.Equal(first, second) {
		t.Errorf("runs differ: %v != %v", first, second)
	}
	for i := 1; i < len(first); i++ {
		if first[i].Timing <= first[i-1].Timing || first[i].Token <= first[i-1].Token {
			t.Errorf("links are not strictly increasing: %v", first)
		}
	}
}

func TestCoverage_Empty(t *testing.T) {
	if c := Coverage(nil, nil); c != 0 {
		t.Errorf("Coverage() = %v, want 0", c)
	}
}
