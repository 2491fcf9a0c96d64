package document

import (
	"slices"

	"github.com/beevik/etree"
)

var trackingAttrs = []string{AttrTranscript, AttrCurrentMedia, AttrLinkedMedia, AttrWord, AttrBlock, AttrPhrase}

// Cleanup removes all markup added by Prepare and by linking: segmentation
// spans are unwrapped back to text, tracking attributes and highlight
// classes are dropped.
func Cleanup(doc *etree.Document, highlight ...string) {
	var spans []*etree.Element
	walkElements(doc.Root(), func(el *etree.Element) bool {
		for _, attr := range trackingAttrs {
			el.RemoveAttr(attr)
		}
		RemoveClass(el, highlight...)
		if HasClass(el, ClassWord) || HasClass(el, ClassWhitespace) {
			spans = append(spans, el)
		}
		return true
	})

	parents := make(map[*etree.Element]struct{})
	for _, span := range spans {
		if parent := unwrap(span); parent != nil {
			parents[parent] = struct{}{}
		}
	}
	for parent := range parents {
		mergeText(parent)
	}
}

// Compact unwraps whitespace spans and word spans which were not linked to
// any timing, leaving only markup highlighting needs.
func Compact(root *etree.Element) {
	var spans []*etree.Element
	walkElements(root, func(el *etree.Element) bool {
		switch {
		case HasClass(el, ClassWhitespace):
			spans = append(spans, el)
		case HasClass(el, ClassWord) && el.SelectAttr(AttrWord) == nil:
			spans = append(spans, el)
		}
		return true
	})
	parents := make(map[*etree.Element]struct{})
	for _, span := range spans {
		if parent := unwrap(span); parent != nil {
			parents[parent] = struct{}{}
		}
	}
	for parent := range parents {
		mergeText(parent)
	}
}

// ClearIndexes removes word, block and phrase indexes from transcript.
func ClearIndexes(root *etree.Element) {
	walkElements(root, func(el *etree.Element) bool {
		el.RemoveAttr(AttrWord)
		el.RemoveAttr(AttrBlock)
		el.RemoveAttr(AttrPhrase)
		return true
	})
}

// unwrap replaces element with its content, returns former parent.
func unwrap(el *etree.Element) *etree.Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	pos := el.Index()
	children := slices.Clone(el.Child)
	parent.RemoveChildAt(pos)
	for _, child := range children {
		el.RemoveChild(child)
		parent.InsertChildAt(pos, child)
		pos++
	}
	return parent
}

// mergeText joins adjacent text nodes.
func mergeText(el *etree.Element) {
	for i := 1; i < len(el.Child); {
		prev, ok1 := el.Child[i-1].(*etree.CharData)
		cur, ok2 := el.Child[i].(*etree.CharData)
		if ok1 && ok2 && !prev.IsCData() && !cur.IsCData() {
			el.RemoveChildAt(i)
			el.RemoveChildAt(i - 1)
			el.InsertChildAt(i-1, etree.NewText(prev.Data+cur.Data))
			continue
		}
		i++
	}
}
