package document

import (
	"strings"

	"github.com/beevik/etree"
)

// MediaElements returns audio and video elements of the document in
// document order.
func MediaElements(doc *etree.Document) []*etree.Element {
	var result []*etree.Element
	walkElements(doc.Root(), func(el *etree.Element) bool {
		switch strings.ToLower(el.Tag) {
		case "audio", "video":
			result = append(result, el)
			return false
		}
		return true
	})
	return result
}

// MediaSources returns src of the media element followed by src of its
// source children.
func MediaSources(el *etree.Element) []string {
	var urls []string
	if src := el.SelectAttrValue("src", ""); src != "" {
		urls = append(urls, src)
	}
	for _, s := range el.SelectElements("source") {
		if src := s.SelectAttrValue("src", ""); src != "" {
			urls = append(urls, src)
		}
	}
	return urls
}

// MetadataTrack returns src of the first metadata track of the media
// element.
func MetadataTrack(el *etree.Element) string {
	for _, t := range el.SelectElements("track") {
		if t.SelectAttrValue("kind", "") == "metadata" {
			if src := t.SelectAttrValue("src", ""); src != "" {
				return src
			}
		}
	}
	return ""
}
