package tracker

import (
	"testing"

	"ttrace/events"
)

var list = []events.TimedEvent{
	{Seconds: 1, Words: []int{0}},
	{Seconds: 2.5, Words: []int{1, 2}},
	{Seconds: 4, Words: []int{3}},
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		at   float64
		want int
	}{
		{"before first", 0.999, None},
		{"negative", -5, None},
		{"first boundary", 1, 0},
		{"inside first", 2.499, 0},
		{"second boundary", 2.5, 1},
		{"just below last", 3.999, 1},
		{"last boundary", 4, 2},
		{"after last", 1e6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(list, tt.at); got != tt.want {
				t.Errorf("Find(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
	if got := Find(nil, 10); got != None {
		t.Errorf("Find() on empty list = %d", got)
	}
}

// linearFind is the straightforward definition used to check binary search.
func linearFind(list []events.TimedEvent, at float64) int {
	for i, ev := range list {
		if ev.Seconds <= at && (i == len(list)-1 || at < list[i+1].Seconds) {
			return i
		}
	}
	return None
}

func TestFind_MatchesLinear(t *testing.T) {
	for at := -1.0; at < 6; at += 0.125 {
		if got, want := Find(list, at), linearFind(list, at); got != want {
			t.Errorf("Find(%v) = %d, linear = %d", at, got, want)
		}
	}
}

func TestTracker_Update(t *testing.T) {
	tr := New(0.5)
	if _, changed := tr.Update("a.mp3", 3, list); changed {
		t.Error("update of inactive media must be ignored")
	}

	if prev, switched := tr.Activate("a.mp3"); prev != "" || !switched {
		t.Errorf("Activate() = %q, %v", prev, switched)
	}

	steps := []struct {
		raw     float64
		want    int
		changed bool
	}{
		{0.2, None, true}, // first resolution is always reported
		{1.4, None, false},
		{1.5, 0, true}, // offset applied
		{2, 0, false},
		{50, 2, true},
		{5, 2, false},
		{3, 1, true}, // backward seek
		{0, None, true},
	}
	for i, s := range steps {
		idx, changed := tr.Update("a.mp3", s.raw, list)
		if idx != s.want || changed != s.changed {
			t.Errorf("step %d: Update(%v) = %d, %v, want %d, %v", i, s.raw, idx, changed, s.want, s.changed)
		}
	}
	if tr.Last() != None {
		t.Errorf("Last() = %d", tr.Last())
	}
}

func TestTracker_SwitchMedia(t *testing.T) {
	tr := New(0)
	tr.Activate("a")
	tr.Update("a", 3, list)

	if prev, switched := tr.Activate("a"); prev != "a" || switched {
		t.Errorf("re-activation = %q, %v", prev, switched)
	}
	if prev, switched := tr.Activate("b"); prev != "a" || !switched {
		t.Errorf("Activate(b) = %q, %v", prev, switched)
	}
	if _, changed := tr.Update("a", 3, list); changed {
		t.Error("previous media must be ignored")
	}
	if idx, changed := tr.Update("b", 3, list); idx != 1 || !changed {
		t.Errorf("Update(b) = %d, %v", idx, changed)
	}

	tr.Invalidate()
	if idx, changed := tr.Update("b", 3, list); idx != 1 || !changed {
		t.Errorf("after Invalidate() = %d, %v", idx, changed)
	}

	tr.Reset()
	if tr.Active() != "" || tr.Last() != None {
		t.Error("Reset() must forget everything")
	}
}

func TestTracker_EmptyEvents(t *testing.T) {
	tr := New(0)
	tr.Activate("a")
	for _, at := range []float64{0, 10, 100} {
		if idx, _ := tr.Update("a", at, nil); idx != None {
			t.Errorf("Update(%v) on empty list = %d", at, idx)
		}
	}
}
