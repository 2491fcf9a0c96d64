package engine

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"ttrace/document"
	"ttrace/events"
	"ttrace/media"
	"ttrace/tracker"
)

// HandlePlay makes media active. Media started before loading finished is
// paused. Previously active media is paused, its highlighting is cleared
// and position updates are followed for the new media only.
func (e *Engine) HandlePlay(h media.Handle) {
	if !e.loaded {
		e.log.Debug("Play before transcript is loaded, pausing")
		h.Pause()
		return
	}

	if e.active != h {
		if prev := e.active; prev != nil {
			e.position()
			e.position = nil
			prev.Pause()
			if lm := e.registry.Get(e.linked[prev]); lm != nil {
				lm.renderer.Clear()
			}
		}
		e.active = h
		e.position = h.Subscribe(media.TimeUpdate, e.HandleTimeUpdate)
		e.tracker.Invalidate()
	}

	id := e.linked[h]
	if _, switched := e.tracker.Activate(id); switched {
		e.log.Debug("Active media", zap.String("media", id))
	}
	if lm := e.registry.Get(id); lm != nil {
		lm.transcript.Root.CreateAttr(document.AttrCurrentMedia, id)
	}
}

// HandleTimeUpdate resolves position of the active media and re-highlights
// its transcript when resolved event changes.
func (e *Engine) HandleTimeUpdate(h media.Handle) {
	if h != e.active {
		return
	}
	id := e.linked[h]
	lm := e.registry.Get(id)
	if lm == nil {
		return
	}
	idx, changed := e.tracker.Update(id, h.Position(), lm.Events)
	if !changed {
		return
	}
	var ev *events.TimedEvent
	if idx != tracker.None {
		ev = &lm.Events[idx]
	}
	lm.renderer.Highlight(ev)
}

// HandleEnded clears highlighting of media transcript.
func (e *Engine) HandleEnded(h media.Handle) {
	if lm := e.registry.Get(e.linked[h]); lm != nil {
		lm.renderer.Clear()
	}
	if h == e.active {
		e.tracker.Invalidate()
	}
}

// HandleWordClick seeks media transcript currently follows to the start of
// clicked word. Reports if seek was requested.
func (e *Engine) HandleWordClick(word *etree.Element) bool {
	if !e.cfg.Clickable || word == nil {
		return false
	}
	index, ok := document.Index(word, document.AttrWord)
	if !ok {
		return false
	}
	transcript := document.ClosestWithClass(word, document.ClassTranscript)
	if transcript == nil {
		return false
	}
	lm := e.registry.Get(transcript.SelectAttrValue(document.AttrCurrentMedia, ""))
	if lm == nil || index < 0 || index >= len(lm.Timings) {
		return false
	}
	e.log.Debug("Word clicked", zap.Int("word", index), zap.String("media", lm.ID))
	lm.Media.Seek(lm.Timings[index].StartSeconds)
	return true
}

// Highlighted returns elements currently marked in transcript of the media.
func (e *Engine) Highlighted(id string) []*etree.Element {
	if lm := e.registry.Get(id); lm != nil {
		return lm.renderer.Marked()
	}
	return nil
}
