// Package debug produces human readable dumps of engine state and markup.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled value quoted, empty value is left as is.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Element writes markup subtree, one node per line. Only attributes with
// names accepted by keep are shown, nil keep shows all of them. Blank text
// is skipped.
func (tw TreeWriter) Element(depth int, el *etree.Element, keep func(name string) bool) {
	tw.indent(depth)
	tw.w.WriteString(el.Tag)
	for _, a := range el.Attr {
		if keep != nil && !keep(a.Key) {
			continue
		}
		fmt.Fprintf(tw.w, " %s=%s", a.Key, strconv.Quote(a.Value))
	}
	tw.w.WriteByte('\n')

	for _, child := range el.Child {
		switch n := child.(type) {
		case *etree.Element:
			tw.Element(depth+1, n, keep)
		case *etree.CharData:
			if strings.TrimSpace(n.Data) != "" {
				tw.TextBlock(depth+1, "#text", n.Data)
			}
		}
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
