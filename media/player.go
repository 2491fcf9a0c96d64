package media

import (
	"slices"

	"github.com/beevik/etree"

	"ttrace/document"
)

type subscription struct {
	l Listener
}

// Player is a simulated media. It does not advance by itself, caller moves
// it along the timeline and it notifies subscribers synchronously.
type Player struct {
	name     string
	sources  []string
	track    string
	el       *etree.Element
	position float64
	playing  bool
	subs     map[EventKind][]*subscription
}

// NewPlayer returns stopped player at position 0.
func NewPlayer(name string, sources ...string) *Player {
	return &Player{
		name:    name,
		sources: sources,
		subs:    make(map[EventKind][]*subscription),
	}
}

// FromElement returns player for audio or video element of the document.
// Player is named after element id, or its first source when id is absent.
func FromElement(el *etree.Element) *Player {
	sources := document.MediaSources(el)
	name := el.SelectAttrValue("id", "")
	if name == "" && len(sources) > 0 {
		name = sources[0]
	}
	p := NewPlayer(name, sources...)
	p.el, p.track = el, document.MetadataTrack(el)
	return p
}

// Players returns player for every media element of the document.
func Players(doc *etree.Document) []*Player {
	var result []*Player
	for _, el := range document.MediaElements(doc) {
		result = append(result, FromElement(el))
	}
	return result
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Sources() []string {
	return p.sources
}

func (p *Player) Position() float64 {
	return p.position
}

func (p *Player) Playing() bool {
	return p.playing
}

// Track returns src of the metadata text track, empty if there is none.
func (p *Player) Track() string {
	return p.track
}

// Element returns media element player was made from, nil for players
// created with NewPlayer.
func (p *Player) Element() *etree.Element {
	return p.el
}

// Play starts playback, play notification is delivered even when player
// is already playing.
func (p *Player) Play() {
	p.playing = true
	p.emit(Play)
}

// Pause stops playback, has no effect on stopped player.
func (p *Player) Pause() {
	if !p.playing {
		return
	}
	p.playing = false
	p.emit(Pause)
}

// Seek moves playback position, position is never negative.
func (p *Player) Seek(seconds float64) {
	p.position = max(seconds, 0)
	p.emit(TimeUpdate)
}

// Advance moves position forward by delta seconds as playback would.
func (p *Player) Advance(delta float64) {
	p.Seek(p.position + delta)
}

// End stops playback at the end of the media.
func (p *Player) End() {
	p.playing = false
	p.emit(Ended)
}

// Listeners returns number of active subscriptions of the kind.
func (p *Player) Listeners(kind EventKind) int {
	return len(p.subs[kind])
}

func (p *Player) Subscribe(kind EventKind, l Listener) func() {
	s := &subscription{l: l}
	p.subs[kind] = append(p.subs[kind], s)
	return func() {
		p.subs[kind] = slices.DeleteFunc(p.subs[kind], func(e *subscription) bool {
			return e == s
		})
	}
}

// emit calls listeners registered at the moment of notification which are
// still subscribed when their turn comes.
func (p *Player) emit(kind EventKind) {
	for _, s := range slices.Clone(p.subs[kind]) {
		if slices.Contains(p.subs[kind], s) {
			s.l(p)
		}
	}
}
