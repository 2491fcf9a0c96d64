package document

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Load parses structured content. Declared encodings are respected and HTML
// named character references are accepted, XHTML documents in the wild do
// not always follow XML standard.
func Load(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        xml.HTMLEntity,
		Permissive:    true,
		PreserveCData: true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("unable to read document: no root element")
	}
	return doc, nil
}

// Save writes document out. When indent is positive document is
// reindented, which changes whitespace in mixed content.
func Save(doc *etree.Document, w io.Writer, indent int, declaration bool) error {
	if declaration && !hasDeclaration(doc) {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
		// declaration must go first
		if n := len(doc.Child); n > 1 {
			pi := doc.Child[n-1]
			doc.RemoveChildAt(n - 1)
			doc.InsertChildAt(0, pi)
		}
	}
	if indent > 0 {
		doc.Indent(indent)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	return nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}
