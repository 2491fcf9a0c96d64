package events

import (
	"slices"
	"testing"

	"ttrace/align"
	"ttrace/timing"
)

func linkAll(wts []timing.WordTiming) []align.Link {
	links := make([]align.Link, 0, len(wts))
	for i := range wts {
		links = append(links, align.Link{Token: i, Timing: i})
	}
	return links
}

func TestBuild_MergesSameStart(t *testing.T) {
	wts := timing.Parse("00:00:01.000 --> 00:00:02.000\nHello world.")
	got := Build(linkAll(wts), wts, nil)

	if len(got) != 1 {
		t.Fatalf("Build() = %+v, want single event", got)
	}
	if got[0].Seconds != 1 || !slices.Equal(got[0].Words, []int{0, 1}) {
		t.Errorf("event = %+v", got[0])
	}
	if got[0].Block != 0 || got[0].Phrase != 0 {
		t.Errorf("groups must come from timings: %+v", got[0])
	}
}

func TestBuild_StrictlyIncreasing(t *testing.T) {
	wts := []timing.WordTiming{
		{Text: "a", StartSeconds: 0.5, WordIndex: 0, BlockIndex: 0, PhraseIndex: 0},
		{Text: "b", StartSeconds: 1, WordIndex: 1, BlockIndex: 0, PhraseIndex: 1},
		{Text: "c", StartSeconds: 1, WordIndex: 2, BlockIndex: 0, PhraseIndex: 1},
		{Text: "d", StartSeconds: 2.25, WordIndex: 3, BlockIndex: 1, PhraseIndex: 2},
		{Text: "e", StartSeconds: 3, WordIndex: 4, BlockIndex: 1, PhraseIndex: 2},
	}
	got := Build(linkAll(wts), wts, nil)

	if len(got) != 4 {
		t.Fatalf("Build() = %+v, want 4 events", got)
	}
	seen := map[int]int{}
	for i, ev := range got {
		if i > 0 && ev.Seconds <= got[i-1].Seconds {
			t.Errorf("events are not strictly increasing at %d: %+v", i, got)
		}
		for _, w := range ev.Words {
			seen[w]++
		}
	}
	for w := range wts {
		if seen[w] != 1 {
			t.Errorf("word %d belongs to %d events", w, seen[w])
		}
	}
	if got[2].Block != 1 || got[2].Phrase != 2 {
		t.Errorf("event 2 groups = %d/%d", got[2].Block, got[2].Phrase)
	}
}

func TestBuild_SkipsUnlinked(t *testing.T) {
	wts := []timing.WordTiming{
		{Text: "a", StartSeconds: 1, WordIndex: 0},
		{Text: "b", StartSeconds: 2, WordIndex: 1},
		{Text: "c", StartSeconds: 3, WordIndex: 2},
	}
	links := []align.Link{{Token: 0, Timing: 0}, {Token: 3, Timing: 2}}
	got := Build(links, wts, nil)

	if len(got) != 2 || got[0].Words[0] != 0 || got[1].Words[0] != 2 {
		t.Errorf("Build() = %+v", got)
	}
}

func TestBuild_GroupFunc(t *testing.T) {
	wts := []timing.WordTiming{
		{Text: "a", StartSeconds: 1, WordIndex: 0, BlockIndex: 7, PhraseIndex: 7},
		{Text: "b", StartSeconds: 2, WordIndex: 1, BlockIndex: 7, PhraseIndex: 7},
	}
	links := []align.Link{{Token: 4, Timing: 0}, {Token: 9, Timing: 1}}

	var asked []int
	got := Build(links, wts, func(token int) (int, int) {
		asked = append(asked, token)
		if token == 4 {
			return 0, None
		}
		return 1, 3
	})

	if !slices.Equal(asked, []int{4, 9}) {
		t.Errorf("GroupFunc called for %v", asked)
	}
	if got[0].Block != 0 || got[0].Phrase != None || got[1].Block != 1 || got[1].Phrase != 3 {
		t.Errorf("Build() = %+v", got)
	}
}

func TestBuild_OutOfOrderTimingsAreSorted(t *testing.T) {
	// links can only come in timing order from the aligner, still sorting
	// has to keep equal seconds in construction order
	wts := []timing.WordTiming{
		{Text: "a", StartSeconds: 5, WordIndex: 0},
		{Text: "b", StartSeconds: 1, WordIndex: 1},
		{Text: "c", StartSeconds: 5, WordIndex: 2},
	}
	got := Build(linkAll(wts), wts, nil)

	want := []float64{1, 5, 5}
	for i, ev := range got {
		if ev.Seconds != want[i] {
			t.Errorf("event %d at %v, want %v", i, ev.Seconds, want[i])
		}
	}
	if got[1].Words[0] != 0 || got[2].Words[0] != 2 {
		t.Errorf("stable order lost: %+v", got)
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil, nil, nil); len(got) != 0 {
		t.Errorf("Build() = %+v, want empty", got)
	}
}

func TestTimedEvent_Helpers(t *testing.T) {
	ev := TimedEvent{Words: []int{4, 2, 3}}
	if !ev.Contains(2) || ev.Contains(5) {
		t.Error("Contains() is wrong")
	}
	if ev.First() != 2 {
		t.Errorf("First() = %d", ev.First())
	}
	if (TimedEvent{}).First() != None {
		t.Error("First() of empty event must be None")
	}
}
