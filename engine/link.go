package engine

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"ttrace/align"
	"ttrace/css"
	"ttrace/document"
	"ttrace/events"
	"ttrace/group"
	"ttrace/media"
	"ttrace/render"
	"ttrace/timing"
)

type assignment struct {
	block, phrase int
}

// link aligns transcript words with timings and registers result under
// media source url. Transcript already linked to other media of the document
// keeps its markup, new media gets its own entry sharing it.
func (e *Engine) link(h media.Handle, url string, t *document.Transcript, timings []timing.WordTiming) {
	log := e.log.With(zap.String("media", url), zap.Int("transcript", t.Index))
	if len(timings) == 0 {
		log.Debug("No timings, transcript is not linked")
		return
	}
	t.Root.CreateAttr(document.AttrCurrentMedia, url)

	if first := e.shared[t]; first != nil {
		e.register(h, log, &LinkedMedia{
			ID:              url,
			TranscriptIndex: t.Index,
			Timings:         first.Timings,
			Events:          first.Events,
			Media:           h,
			transcript:      t,
			layout:          first.layout,
			renderer:        render.New(first.layout, e.cfg.AutoScroll, e.scroller),
		})
		log.Debug("Transcript shared", zap.String("with", first.ID), zap.Int("events", len(first.Events)))
		return
	}

	layout := &render.Layout{Words: t.Words}
	blockContainers := tagContainers(t.Root, e.blocks, document.AttrBlock, &layout.Blocks)
	phraseContainers := tagContainers(t.Root, e.phrases, document.AttrPhrase, &layout.Phrases)

	links := align.Align(t.Tokens(), timings, e.cfg.Fuzziness)

	var blockCarriers, phraseCarriers []group.Carrier[*etree.Element]
	assigned := make(map[int]assignment, len(links))
	for _, l := range links {
		wt, word := timings[l.Timing], t.Words[l.Token]

		a := assignment{block: wt.BlockIndex, phrase: wt.PhraseIndex}
		if len(e.blocks) > 0 {
			a.block = closestIndex(e.blocks, word, blockContainers)
		} else {
			blockCarriers = append(blockCarriers, group.Carrier[*etree.Element]{Node: word, Index: a.block})
		}
		if len(e.phrases) > 0 {
			a.phrase = closestIndex(e.phrases, word, phraseContainers)
		} else {
			phraseCarriers = append(phraseCarriers, group.Carrier[*etree.Element]{Node: word, Index: a.phrase})
		}
		assigned[l.Token] = a

		document.SetIndex(word, document.AttrWord, wt.WordIndex)
		layout.AddWord(wt.WordIndex, word)
		if a.block != events.None {
			document.SetIndex(word, document.AttrBlock, a.block)
			layout.Blocks.Add(a.block, word)
		}
		if a.phrase != events.None {
			document.SetIndex(word, document.AttrPhrase, a.phrase)
			layout.Phrases.Add(a.phrase, word)
		}
	}

	resolveContainers(blockCarriers, t.Root, document.AttrBlock, &layout.Blocks)
	resolveContainers(phraseCarriers, t.Root, document.AttrPhrase, &layout.Phrases)

	lm := &LinkedMedia{
		ID:              url,
		TranscriptIndex: t.Index,
		Timings:         timings,
		Events: events.Build(links, timings, func(token int) (int, int) {
			a := assigned[token]
			return a.block, a.phrase
		}),
		Media:      h,
		transcript: t,
		layout:     layout,
		renderer:   render.New(layout, e.cfg.AutoScroll, e.scroller),
	}
	e.shared[t] = lm
	e.register(h, log, lm)

	log.Debug("Transcript linked",
		zap.Int("words", len(t.Words)),
		zap.Int("aligned", len(links)),
		zap.Float64("coverage", align.Coverage(links, timings)),
		zap.Int("events", len(lm.Events)))
}

func (e *Engine) register(h media.Handle, log *zap.Logger, lm *LinkedMedia) {
	if old := e.registry.Put(lm); old != nil && old.transcript != lm.transcript {
		log.Warn("Media was linked to another transcript, replacing", zap.Int("previous", old.TranscriptIndex))
		old.renderer.Clear()
	}
	e.linked[h] = lm.ID
	if el, ok := h.(interface{ Element() *etree.Element }); ok && el.Element() != nil {
		el.Element().CreateAttr(document.AttrLinkedMedia, lm.ID)
	}
}

// Unlink removes highlighting and indexes of the transcript and drops
// linkage of every media following it from registry.
func (e *Engine) Unlink(t *document.Transcript) {
	for _, id := range e.registry.IDs() {
		if lm := e.registry.Get(id); lm.transcript == t {
			lm.renderer.Clear()
			e.registry.Delete(id)
		}
	}
	delete(e.shared, t)
	document.ClearIndexes(t.Root)
	t.Root.RemoveAttr(document.AttrCurrentMedia)
}

// tagContainers numbers every element of the transcript matched by
// selectors in document order.
func tagContainers(root *etree.Element, sel css.Group, attr string, g *render.Groups) map[*etree.Element]int {
	if len(sel) == 0 {
		return nil
	}
	result := make(map[*etree.Element]int)
	for i, el := range sel.Select(root) {
		document.SetIndex(el, attr, i)
		g.SetContainer(i, el)
		result[el] = i
	}
	return result
}

func closestIndex(sel css.Group, word *etree.Element, containers map[*etree.Element]int) int {
	if c := sel.Closest(word); c != nil {
		if i, ok := containers[c]; ok {
			return i
		}
	}
	return events.None
}

func resolveContainers(carriers []group.Carrier[*etree.Element], root *etree.Element, attr string, g *render.Groups) {
	if len(carriers) == 0 {
		return
	}
	parent := func(el *etree.Element) (*etree.Element, bool) {
		p := el.Parent()
		return p, p != nil
	}
	for index, el := range group.Resolve(carriers, parent, root) {
		document.SetIndex(el, attr, index)
		g.SetContainer(index, el)
	}
}
