package timing

import (
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"ttrace/config"
	"ttrace/text"
)

func TestParse_Example(t *testing.T) {
	got := Parse("00:00:01.000 --> 00:00:02.000\nHello world.")
	want := []WordTiming{
		{Text: "Hello", StartSeconds: 1, EndSeconds: 2, WordIndex: 0},
		{Text: "world", StartSeconds: 1, EndSeconds: 2, WordIndex: 1},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParse_Empty(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"blank", "\n\n  \n"},
		{"preamble only", "WEBVTT\n\nNOTE nothing here\n"},
		{"garbage", "this is not\na timing source"},
		{"bad header", "00:01.0 --> 00:02.000\nword"},
		{"header without text", "00:00:01.000 --> 00:00:02.000\n\n"},
		{"punctuation only", "00:00:01.000 --> 00:00:02.000\n.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.source); len(got) != 0 {
				t.Errorf("Parse() = %+v, want empty", got)
			}
		})
	}
}

const webvtt = "WEBVTT\r\n" +
	"\r\n" +
	"NOTE produced by hand\r\n" +
	"\r\n" +
	"1\r\n" +
	"00:00:00.500 --> 00:00:01.000 align:start\r\n" +
	"The quick\r\n" +
	"brown fox,\r\n" +
	"\r\n" +
	"2\r\n" +
	"00:01.000 --> 00:01.500\r\n" +
	"jumps!\r\n" +
	"01:00:00.250 --> 01:00:01.000\r\n" +
	"Over it?\r\n"

func TestParse_WebVTT(t *testing.T) {
	got := Parse(webvtt)

	texts := make([]string, 0, len(got))
	for i, wt := range got {
		if wt.WordIndex != i {
			t.Errorf("word %d has index %d", i, wt.WordIndex)
		}
		if wt.BlockIndex != 0 || wt.PhraseIndex != 0 {
			t.Errorf("word %d grouped without grouping: %+v", i, wt)
		}
		texts = append(texts, wt.Text)
	}
	want := []string{"The", "quick", "brown", "fox", "jumps", "Over", "it"}
	if !slices.Equal(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}
	if got[4].StartSeconds != 1 || got[4].EndSeconds != 1.5 {
		t.Errorf("short timestamp form: %+v", got[4])
	}
	if got[5].StartSeconds != 3600.25 {
		t.Errorf("hours: %+v", got[5])
	}
}

func TestParse_StripsOnlyOneTrailingSymbol(t *testing.T) {
	got := Parse("00:00:01.000 --> 00:00:02.000\nreally?!\n")
	if len(got) != 1 || got[0].Text != "really?" {
		t.Errorf("Parse() = %+v", got)
	}
}

func TestParse_SortsCuesByStart(t *testing.T) {
	source := "00:00:03.000 --> 00:00:04.000\nthird\n\n" +
		"00:00:01.000 --> 00:00:02.000\nfirst\n\n" +
		"00:00:03.000 --> 00:00:03.500\nfourth\n\n" +
		"00:00:02.000 --> 00:00:03.000\nsecond\n"

	got := Parse(source)
	var texts []string
	for i, wt := range got {
		texts = append(texts, wt.Text)
		if i > 0 && wt.StartSeconds < got[i-1].StartSeconds {
			t.Errorf("timings are not ordered at %d", i)
		}
	}
	want := []string{"first", "second", "third", "fourth"}
	if !slices.Equal(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}
}

func TestParseGrouped_Cue(t *testing.T) {
	source := "00:00:01.000 --> 00:00:02.000\nHello world.\n\n" +
		"00:00:02.000 --> 00:00:03.000\n!\n\n" +
		"00:00:03.000 --> 00:00:04.000\nGood bye\n"

	got := ParseGrouped(source, Grouping{Blocks: config.GroupingModeCue, Phrases: config.GroupingModeNone})
	blocks := make([]int, 0, len(got))
	for _, wt := range got {
		blocks = append(blocks, wt.BlockIndex)
		if wt.PhraseIndex != 0 {
			t.Errorf("phrase grouping is off, got %+v", wt)
		}
	}
	// cue without words does not take an ordinal
	if want := []int{0, 0, 1, 1}; !slices.Equal(blocks, want) {
		t.Errorf("blocks = %v, want %v", blocks, want)
	}
}

func TestParseGrouped_Sentence(t *testing.T) {
	source := "00:00:01.000 --> 00:00:02.000\nHello\n\n" +
		"00:00:02.000 --> 00:00:03.000\nworld.\n\n" +
		"00:00:03.000 --> 00:00:04.000\nHow are\n\n" +
		"00:00:04.000 --> 00:00:05.000\nyou?\n"

	splitter := text.NewSplitter(language.English, zaptest.NewLogger(t))
	got := ParseGrouped(source, Grouping{Phrases: config.GroupingModeSentence, Splitter: splitter})

	phrases := make([]int, 0, len(got))
	for _, wt := range got {
		phrases = append(phrases, wt.PhraseIndex)
	}
	if want := []int{0, 0, 1, 1, 1}; !slices.Equal(phrases, want) {
		t.Errorf("phrases = %v, want %v", phrases, want)
	}
}

func TestParseGrouped_SentenceWithoutSplitter(t *testing.T) {
	source := "00:00:01.000 --> 00:00:02.000\nOne. Two.\n"
	got := ParseGrouped(source, Grouping{Blocks: config.GroupingModeSentence})
	for _, wt := range got {
		if wt.BlockIndex != 0 {
			t.Errorf("expected single sentence, got %+v", wt)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00:01.000", 1, false},
		{"01:02:03.500", 3723.5, false},
		{"02:03.250", 123.25, false},
		{"1", 0, true},
		{"aa:00:01.000", 0, true},
		{"00:bb:01.000", 0, true},
		{"00:00:cc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00.000"},
		{1.5, "00:00:01.500"},
		{3723.25, "01:02:03.250"},
		{-2, "-00:00:02.000"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
