// Package render applies highlight markers to transcript elements.
package render

import (
	"github.com/beevik/etree"

	"ttrace/config"
	"ttrace/document"
	"ttrace/events"
)

// Highlight classes.
const (
	ClassCurrentBlock           = "tt-current-block"
	ClassCurrentBlockContainer  = "tt-current-block-container"
	ClassCurrentPhrase          = "tt-current-phrase"
	ClassCurrentPhraseContainer = "tt-current-phrase-container"
	ClassCurrentWord            = "tt-current-word"
	ClassPreviousWord           = "tt-previous-word"
)

// Classes lists every class renderer may set.
var Classes = []string{
	ClassCurrentBlock,
	ClassCurrentBlockContainer,
	ClassCurrentPhrase,
	ClassCurrentPhraseContainer,
	ClassCurrentWord,
	ClassPreviousWord,
}

// Groups keeps containers and member words of block or phrase indexes.
type Groups struct {
	Containers map[int]*etree.Element
	Members    map[int][]*etree.Element
}

// Add registers member word of the group.
func (g *Groups) Add(index int, word *etree.Element) {
	if g.Members == nil {
		g.Members = make(map[int][]*etree.Element)
	}
	g.Members[index] = append(g.Members[index], word)
}

// SetContainer registers container of the group.
func (g *Groups) SetContainer(index int, el *etree.Element) {
	if g.Containers == nil {
		g.Containers = make(map[int]*etree.Element)
	}
	g.Containers[index] = el
}

// Layout is retained references to transcript elements, captured once when
// transcript is linked.
type Layout struct {
	// every word span of the transcript in document order
	Words   []*etree.Element
	ByWord  map[int][]*etree.Element
	Blocks  Groups
	Phrases Groups
}

// AddWord registers linked word span.
func (l *Layout) AddWord(index int, el *etree.Element) {
	if l.ByWord == nil {
		l.ByWord = make(map[int][]*etree.Element)
	}
	l.ByWord[index] = append(l.ByWord[index], el)
}

// Scroller brings element into view.
type Scroller interface {
	ScrollIntoView(el *etree.Element)
}

// Renderer marks elements of a single transcript.
type Renderer struct {
	layout   *Layout
	mode     config.ScrollMode
	scroller Scroller
	marked   []*etree.Element
}

func New(layout *Layout, mode config.ScrollMode, scroller Scroller) *Renderer {
	return &Renderer{layout: layout, mode: mode, scroller: scroller}
}

// Clear removes markers set by the previous Highlight.
func (r *Renderer) Clear() {
	for _, el := range r.marked {
		document.RemoveClass(el, Classes...)
	}
	r.marked = r.marked[:0]
}

// Marked returns elements carrying markers.
func (r *Renderer) Marked() []*etree.Element {
	return r.marked
}

func (r *Renderer) mark(el *etree.Element, class string) {
	document.AddClass(el, class)
	r.marked = append(r.marked, el)
}

func (r *Renderer) markGroup(g *Groups, index int, container, member string) *etree.Element {
	if index == events.None {
		return nil
	}
	c := g.Containers[index]
	if c != nil {
		r.mark(c, container)
	}
	for _, w := range g.Members[index] {
		r.mark(w, member)
	}
	return c
}

// Highlight recomputes markers for the event, nil event only clears them.
// Returns element auto-scroll was performed on if any.
func (r *Renderer) Highlight(ev *events.TimedEvent) *etree.Element {
	r.Clear()
	if ev == nil {
		return nil
	}

	block := r.markGroup(&r.layout.Blocks, ev.Block, ClassCurrentBlockContainer, ClassCurrentBlock)
	phrase := r.markGroup(&r.layout.Phrases, ev.Phrase, ClassCurrentPhraseContainer, ClassCurrentPhrase)

	current := make(map[*etree.Element]bool)
	for _, idx := range ev.Words {
		for _, w := range r.layout.ByWord[idx] {
			r.mark(w, ClassCurrentWord)
			current[w] = true
		}
	}

	var first *etree.Element
	for _, w := range r.layout.Words {
		if current[w] {
			first = w
			break
		}
		r.mark(w, ClassPreviousWord)
	}

	var target *etree.Element
	switch r.mode {
	case config.ScrollModeBlock:
		target = block
	case config.ScrollModePhrase:
		target = phrase
	case config.ScrollModeWord:
		target = first
	}
	if target == nil || r.scroller == nil {
		return nil
	}
	r.scroller.ScrollIntoView(target)
	return target
}
