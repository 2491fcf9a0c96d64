package engine

import (
	"maps"
	"slices"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"

	"ttrace/document"
	"ttrace/events"
	"ttrace/media"
	"ttrace/render"
	"ttrace/timing"
	"ttrace/utils/debug"
)

// LinkedMedia is media source resolved to its transcript and timing data.
type LinkedMedia struct {
	ID              string
	TranscriptIndex int
	Timings         []timing.WordTiming
	Events          []events.TimedEvent
	Media           media.Handle

	transcript *document.Transcript
	layout     *render.Layout
	renderer   *render.Renderer
}

// Transcript returns root element of the linked transcript.
func (lm *LinkedMedia) Transcript() *etree.Element {
	return lm.transcript.Root
}

// Word returns first span linked to timing word index, nil if word was not
// aligned.
func (lm *LinkedMedia) Word(index int) *etree.Element {
	if spans := lm.layout.ByWord[index]; len(spans) > 0 {
		return spans[0]
	}
	return nil
}

// Linked returns number of aligned words.
func (lm *LinkedMedia) Linked() int {
	return len(lm.layout.ByWord)
}

// Registry maps media source identifier to its linkage.
type Registry struct {
	entries map[string]*LinkedMedia
}

func (r *Registry) Get(id string) *LinkedMedia {
	return r.entries[id]
}

// Put stores linkage under its ID and returns replaced one if any.
func (r *Registry) Put(lm *LinkedMedia) *LinkedMedia {
	if r.entries == nil {
		r.entries = make(map[string]*LinkedMedia)
	}
	old := r.entries[lm.ID]
	r.entries[lm.ID] = lm
	return old
}

func (r *Registry) Delete(id string) {
	delete(r.entries, id)
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) Reset() {
	clear(r.entries)
}

// IDs returns registered identifiers in natural order.
func (r *Registry) IDs() []string {
	ids := slices.Collect(maps.Keys(r.entries))
	sort.Sort(natural.StringSlice(ids))
	return ids
}

// String dumps registry content for debugging.
func (r *Registry) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Registry: %d media", r.Len())
	for _, id := range r.IDs() {
		lm := r.entries[id]
		tw.TextBlock(1, "media", id)
		tw.Line(2, "transcript: %d", lm.TranscriptIndex)
		tw.Line(2, "timings: %d, linked: %d", len(lm.Timings), lm.Linked())
		tw.Line(2, "events: %d", len(lm.Events))
		for _, ev := range lm.Events {
			tw.Line(3, "%s words=%v block=%d phrase=%d", timing.FormatTimestamp(ev.Seconds), ev.Words, ev.Block, ev.Phrase)
		}
	}
	return tw.String()
}
