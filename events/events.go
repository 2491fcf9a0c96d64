// Package events builds time ordered highlight events out of aligned words.
package events

import (
	"cmp"
	"slices"

	"ttrace/align"
	"ttrace/timing"
)

// None marks absent block or phrase.
const None = -1

// TimedEvent activates set of words at the given time.
type TimedEvent struct {
	Seconds float64
	Words   []int
	Block   int
	Phrase  int
}

// GroupFunc returns block and phrase of the document token, it is used when
// grouping comes from document structure rather than from timings.
type GroupFunc func(token int) (block, phrase int)

// Build creates events for the links. Consecutive linked words starting at
// the same time share event, block and phrase of the event come from its
// first word. Result is stable sorted by time.
func Build(links []align.Link, timings []timing.WordTiming, groups GroupFunc) []TimedEvent {
	var result []TimedEvent
	for _, l := range links {
		wt := timings[l.Timing]
		if n := len(result); n > 0 && result[n-1].Seconds == wt.StartSeconds {
			result[n-1].Words = append(result[n-1].Words, wt.WordIndex)
			continue
		}
		ev := TimedEvent{
			Seconds: wt.StartSeconds,
			Words:   []int{wt.WordIndex},
			Block:   wt.BlockIndex,
			Phrase:  wt.PhraseIndex,
		}
		if groups != nil {
			ev.Block, ev.Phrase = groups(l.Token)
		}
		result = append(result, ev)
	}
	slices.SortStableFunc(result, func(a, b TimedEvent) int {
		return cmp.Compare(a.Seconds, b.Seconds)
	})
	return result
}

// Contains reports if word is current in this event.
func (e TimedEvent) Contains(word int) bool {
	return slices.Contains(e.Words, word)
}

// First returns the smallest current word index.
func (e TimedEvent) First() int {
	if len(e.Words) == 0 {
		return None
	}
	return slices.Min(e.Words)
}
