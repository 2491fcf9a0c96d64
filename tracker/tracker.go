// Package tracker resolves playback position to active highlight event.
package tracker

import (
	"sort"

	"ttrace/events"
)

// None is returned when no event is active.
const None = -1

// unknown forces next resolution to be reported as a change.
const unknown = -2

// Find returns index of the event active at the adjusted position: the last
// event which starts at or before it. Position before the first event and
// empty list resolve to None.
func Find(list []events.TimedEvent, adjusted float64) int {
	// first event starting after position
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Seconds > adjusted
	})
	return i - 1
}

// Tracker keeps active media and last resolved event.
type Tracker struct {
	offset float64
	active string
	last   int
}

// New returns tracker subtracting offset seconds from every raw position.
func New(offset float64) *Tracker {
	return &Tracker{offset: offset, last: unknown}
}

// Active returns identifier of the active media, empty if none.
func (t *Tracker) Active() string {
	return t.active
}

// Activate makes media active, returns previously active media and if
// anything has changed.
func (t *Tracker) Activate(id string) (string, bool) {
	prev := t.active
	if prev == id {
		return prev, false
	}
	t.active, t.last = id, unknown
	return prev, true
}

// Update resolves raw position of the media. Updates of inactive media are
// ignored. Second value reports if resolved event differs from the
// previous one.
func (t *Tracker) Update(id string, raw float64, list []events.TimedEvent) (int, bool) {
	if id == "" || id != t.active {
		return None, false
	}
	idx := Find(list, raw-t.offset)
	if idx == t.last {
		return idx, false
	}
	t.last = idx
	return idx, true
}

// Last returns last resolved event index.
func (t *Tracker) Last() int {
	if t.last == unknown {
		return None
	}
	return t.last
}

// Invalidate forgets last resolved event, next update will report a change.
func (t *Tracker) Invalidate() {
	t.last = unknown
}

// Reset forgets active media.
func (t *Tracker) Reset() {
	t.active, t.last = "", unknown
}
