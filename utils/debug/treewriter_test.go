package debug

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"header", 0, "Registry: %d media", []any{2}, "Registry: 2 media\n"},
		{"linkage", 2, "timings: %d, linked: %d", []any{4, 3}, "    timings: 4, linked: 3\n"},
		{"event", 3, "%s words=%v block=%d phrase=%d", []any{"00:00:03.000", []int{2}, 0, -1}, "      00:00:03.000 words=[2] block=0 phrase=-1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"media", 1, "media", "one.mp3", "  media: \"one.mp3\"\n"},
		{"empty", 1, "media", "", "  media: \n"},
		{"word with quotes", 3, "#text", `"Hi"`, "      #text: \"\\\"Hi\\\"\"\n"},
		{"cue with newline", 0, "cue", "Good\nbye.", "cue: \"Good\\nbye.\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_RegistryShape(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "Registry: %d media", 1)
	tw.TextBlock(1, "media", "one.mp3")
	tw.Line(2, "transcript: %d", 0)
	tw.Line(2, "events: %d", 1)
	tw.Line(3, "%s words=%v block=%d phrase=%d", "00:00:01.000", []int{0, 2}, 0, 0)

	want := `Registry: 1 media
  media: "one.mp3"
    transcript: 0
    events: 1
      00:00:01.000 words=[0 2] block=0 phrase=0
`
	if got := tw.String(); got != want {
		t.Errorf("dump =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeWriter_Element(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<div class="tt-transcript" id="x"><p data-tt-block="0"><span class="tt-word">Hi</span>
<span class="tt-whitespace"> </span>there</p></div>`); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		keep func(string) bool
		want string
	}{
		{
			name: "all attributes",
			want: `div class="tt-transcript" id="x"
  p data-tt-block="0"
    span class="tt-word"
      #text: "Hi"
    span class="tt-whitespace"
    #text: "there"
`,
		},
		{
			name: "filtered",
			keep: func(name string) bool { return strings.HasPrefix(name, "data-") },
			want: `div
  p data-tt-block="0"
    span
      #text: "Hi"
    span
    #text: "there"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Element(0, doc.Root(), tt.keep)
			if got := tw.String(); got != tt.want {
				t.Errorf("Element() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
