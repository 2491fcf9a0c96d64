package css

import (
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// Combinator defines relation between compound selector and its ancestor.
type Combinator int

const (
	Descendant Combinator = iota
	Child
)

// AttrOp is attribute selector operation.
type AttrOp int

const (
	AttrExists   AttrOp = iota // [attr]
	AttrEquals                 // [attr=value]
	AttrIncludes               // [attr~=value]
)

type AttrMatch struct {
	Name  string
	Op    AttrOp
	Value string
}

// Selector is a compound selector (element, id, classes, attributes) with
// optional chain of ancestors, e.g. "div.lyrics > p" is "p" with Child
// ancestor "div.lyrics".
type Selector struct {
	Element    string // element name, empty or "*" for any
	ID         string
	Classes    []string
	Attrs      []AttrMatch
	Ancestor   *Selector
	Combinator Combinator // relation to Ancestor
}

// Group is a comma separated list of selectors, element matches group when
// it matches any of them.
type Group []Selector

// String renders selector in canonical form.
func (s Selector) String() string {
	var b strings.Builder
	if s.Ancestor != nil {
		b.WriteString(s.Ancestor.String())
		if s.Combinator == Child {
			b.WriteString(" > ")
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(s.compound())
	return b.String()
}

func (s Selector) compound() string {
	var b strings.Builder
	b.WriteString(s.Element)
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	for _, a := range s.Attrs {
		b.WriteString("[" + a.Name)
		switch a.Op {
		case AttrEquals:
			b.WriteString(`="` + a.Value + `"`)
		case AttrIncludes:
			b.WriteString(`~="` + a.Value + `"`)
		}
		b.WriteByte(']')
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

func (g Group) String() string {
	parts := make([]string, 0, len(g))
	for _, s := range g {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

// Match reports if element satisfies selector.
func (s *Selector) Match(el *etree.Element) bool {
	if !isElement(el) || !s.matchCompound(el) {
		return false
	}
	if s.Ancestor == nil {
		return true
	}
	if s.Combinator == Child {
		return s.Ancestor.Match(el.Parent())
	}
	for p := el.Parent(); isElement(p); p = p.Parent() {
		if s.Ancestor.Match(p) {
			return true
		}
	}
	return false
}

func (s *Selector) matchCompound(el *etree.Element) bool {
	if s.Element != "" && s.Element != "*" && !strings.EqualFold(s.Element, el.Tag) {
		return false
	}
	if s.ID != "" && el.SelectAttrValue("id", "") != s.ID {
		return false
	}
	if len(s.Classes) > 0 {
		have := strings.Fields(el.SelectAttrValue("class", ""))
		for _, c := range s.Classes {
			if !slices.Contains(have, c) {
				return false
			}
		}
	}
	for _, a := range s.Attrs {
		attr := el.SelectAttr(a.Name)
		if attr == nil {
			return false
		}
		switch a.Op {
		case AttrEquals:
			if attr.Value != a.Value {
				return false
			}
		case AttrIncludes:
			if !slices.Contains(strings.Fields(attr.Value), a.Value) {
				return false
			}
		}
	}
	return true
}

// Match reports if element satisfies any selector of the group.
func (g Group) Match(el *etree.Element) bool {
	for i := range g {
		if g[i].Match(el) {
			return true
		}
	}
	return false
}

// Select returns all descendants of root matching the group in document
// order. Root itself is never included, but its ancestors are considered
// when matching.
func (g Group) Select(root *etree.Element) []*etree.Element {
	var result []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if g.Match(child) {
				result = append(result, child)
			}
			walk(child)
		}
	}
	if root != nil && len(g) > 0 {
		walk(root)
	}
	return result
}

// Closest returns element itself or its nearest ancestor matching the group.
func (g Group) Closest(el *etree.Element) *etree.Element {
	for ; isElement(el); el = el.Parent() {
		if g.Match(el) {
			return el
		}
	}
	return nil
}

// document node is an element without tag
func isElement(el *etree.Element) bool {
	return el != nil && el.Tag != ""
}
