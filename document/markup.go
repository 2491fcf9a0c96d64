// Package document handles structured content: transcripts, their word
// segmentation and the markup used for highlighting.
package document

import (
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Classes and attributes of transcript markup.
const (
	ClassTranscript = "tt-transcript"
	ClassWord       = "tt-word"
	ClassWhitespace = "tt-whitespace"

	AttrMediaURLs    = "data-tt-media-urls"
	AttrTranscript   = "data-tt-transcript"
	AttrWord         = "data-tt-word"
	AttrBlock        = "data-tt-block"
	AttrPhrase       = "data-tt-phrase"
	AttrCurrentMedia = "data-tt-current-media-url"
	AttrLinkedMedia  = "data-tt-linked-media-url"
)

// HasClass reports if element class list contains class.
func HasClass(el *etree.Element, class string) bool {
	return slices.Contains(strings.Fields(el.SelectAttrValue("class", "")), class)
}

// AddClass appends class to element class list unless already present.
func AddClass(el *etree.Element, class string) {
	classes := strings.Fields(el.SelectAttrValue("class", ""))
	if slices.Contains(classes, class) {
		return
	}
	el.CreateAttr("class", strings.Join(append(classes, class), " "))
}

// RemoveClass removes classes from element class list, attribute is
// dropped when nothing is left.
func RemoveClass(el *etree.Element, classes ...string) {
	attr := el.SelectAttr("class")
	if attr == nil {
		return
	}
	have := strings.Fields(attr.Value)
	left := slices.DeleteFunc(slices.Clone(have), func(c string) bool {
		return slices.Contains(classes, c)
	})
	switch {
	case len(left) == len(have):
		return
	case len(left) == 0:
		el.RemoveAttr("class")
	default:
		el.CreateAttr("class", strings.Join(left, " "))
	}
}

// SetIndex stores index in element attribute.
func SetIndex(el *etree.Element, attr string, index int) {
	el.CreateAttr(attr, strconv.Itoa(index))
}

// Index reads index stored in element attribute.
func Index(el *etree.Element, attr string) (int, bool) {
	a := el.SelectAttr(attr)
	if a == nil {
		return 0, false
	}
	n, err := strconv.Atoi(a.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ClosestWithClass returns element itself or its nearest ancestor having
// class.
func ClosestWithClass(el *etree.Element, class string) *etree.Element {
	for ; el != nil && el.Tag != ""; el = el.Parent() {
		if HasClass(el, class) {
			return el
		}
	}
	return nil
}
