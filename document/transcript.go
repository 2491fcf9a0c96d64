package document

import (
	"slices"
	"strings"

	"github.com/beevik/etree"

	"ttrace/text"
)

// Transcript is a subtree of the document which could follow media.
type Transcript struct {
	Index     int
	Root      *etree.Element
	MediaURLs []string
	// segmented word spans in document order
	Words []*etree.Element
}

// Tokens returns text of every word span.
func (t *Transcript) Tokens() []string {
	tokens := make([]string, 0, len(t.Words))
	for _, w := range t.Words {
		tokens = append(tokens, w.Text())
	}
	return tokens
}

// Accepts reports if media source is one of transcript media URLs.
func (t *Transcript) Accepts(url string) bool {
	return url != "" && slices.Contains(t.MediaURLs, url)
}

// Position returns document order position of the word span or -1.
func (t *Transcript) Position(word *etree.Element) int {
	return slices.Index(t.Words, word)
}

// CurrentMedia returns media source transcript currently follows.
func (t *Transcript) CurrentMedia() string {
	return t.Root.SelectAttrValue(AttrCurrentMedia, "")
}

// FindTranscripts returns every transcript element of the document in
// document order, including ones without media.
func FindTranscripts(doc *etree.Document) []*etree.Element {
	var result []*etree.Element
	walkElements(doc.Root(), func(el *etree.Element) bool {
		if HasClass(el, ClassTranscript) {
			result = append(result, el)
		}
		return true
	})
	return result
}

// Prepare numbers transcripts and wraps every word and whitespace run of
// their text into spans. Transcripts without media URLs are left alone but
// still take their ordinal.
func Prepare(doc *etree.Document) []*Transcript {
	var result []*Transcript
	for i, el := range FindTranscripts(doc) {
		urls := splitURLs(el.SelectAttrValue(AttrMediaURLs, ""))
		if len(urls) == 0 {
			continue
		}
		SetIndex(el, AttrTranscript, i)
		result = append(result, &Transcript{
			Index:     i,
			Root:      el,
			MediaURLs: urls,
			Words:     segment(el),
		})
	}
	return result
}

func splitURLs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// segment replaces non blank text of the subtree with word and whitespace
// spans and returns word spans in document order.
func segment(root *etree.Element) []*etree.Element {
	var nodes []*etree.CharData
	var collect func(*etree.Element)
	collect = func(el *etree.Element) {
		for _, t := range el.Child {
			switch n := t.(type) {
			case *etree.Element:
				if skipped(n) {
					continue
				}
				collect(n)
			case *etree.CharData:
				if !n.IsCData() && strings.TrimSpace(n.Data) != "" {
					nodes = append(nodes, n)
				}
			}
		}
	}
	collect(root)

	var words []*etree.Element
	for _, n := range nodes {
		parent, pos := n.Parent(), n.Index()
		parent.RemoveChildAt(pos)
		for seg := range text.Segments(n.Data) {
			span := etree.NewElement("span")
			if seg.Space {
				span.CreateAttr("class", ClassWhitespace)
			} else {
				span.CreateAttr("class", ClassWord)
				words = append(words, span)
			}
			span.SetText(seg.Text)
			parent.InsertChildAt(pos, span)
			pos++
		}
	}
	return words
}

func skipped(el *etree.Element) bool {
	switch strings.ToLower(el.Tag) {
	case "script", "style":
		return true
	}
	return HasClass(el, ClassWord) || HasClass(el, ClassWhitespace)
}

// walkElements visits element and its descendants in document order until
// visitor returns false for the element, in which case its subtree is not
// visited.
func walkElements(el *etree.Element, visit func(*etree.Element) bool) {
	if el == nil || !visit(el) {
		return
	}
	for _, child := range el.ChildElements() {
		walkElements(child, visit)
	}
}
