package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"

	"ttrace/archive"
)

// Source is a structured document read either from a file or from an entry
// of zip based archive.
type Source struct {
	// absolute path of the file or of the archive
	Path string
	// entry name when document comes from archive
	Entry string
	Data  []byte

	cp encoding.Encoding
}

// Name returns document file name.
func (s *Source) Name() string {
	if s.Entry != "" {
		return path.Base(s.Entry)
	}
	return filepath.Base(s.Path)
}

// InArchive reports if document comes from archive.
func (s *Source) InArchive() bool {
	return s.Entry != ""
}

// String is used for logging.
func (s *Source) String() string {
	if s.InArchive() {
		return s.Path + "!" + s.Entry
	}
	return s.Path
}

// ReadRelative reads file referenced from the document, reference is
// resolved against document location, inside archive when the document
// comes from archive. Remote references are not supported.
func (s *Source) ReadRelative(ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("bad reference %q: %w", ref, err)
	}
	if u.Scheme != "" || u.Host != "" {
		return nil, fmt.Errorf("reference %q is not local", ref)
	}
	if s.InArchive() {
		return archive.ReadFile(s.Path, path.Join(path.Dir(s.Entry), u.Path), s.cp)
	}
	name := filepath.Join(filepath.Dir(s.Path), filepath.FromSlash(u.Path))
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", ref, err)
	}
	return data, nil
}

// ResolveSource finds document for the path. Path either names a file or
// continues past an archive file with entry name inside it, for example
// "book.epub/OEBPS/ch1.xhtml".
func ResolveSource(ctx context.Context, src string, cp encoding.Encoding) (*Source, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}

	for head := src; len(head) != 0; head, _ = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))
		if len(head) == 0 {
			break
		}

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.Mode().IsDir() {
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		kind, err := detect(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check file type: %w", err)
		}
		tail := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))

		switch {
		case kind == kindArchive && len(tail) != 0:
			data, err := archive.ReadFile(head, tail, cp)
			if err != nil {
				return nil, fmt.Errorf("unable to process archive: %w", err)
			}
			return &Source{Path: head, Entry: tail, Data: data, cp: cp}, nil
		case kind == kindArchive:
			return nil, fmt.Errorf("path to document inside archive is expected (%s)", head)
		case kind == kindBinary:
			return nil, fmt.Errorf("input was not recognized as structured document (%s)", head)
		case len(tail) != 0:
			// document cannot have tail
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, tail)
		}

		data, err := os.ReadFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to read document: %w", err)
		}
		return &Source{Path: head, Data: data, cp: cp}, nil
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

type fileKind int

const (
	kindDocument fileKind = iota
	kindArchive
	kindBinary
)

// detect looks at the file header. Anything not recognized is assumed to be
// a text document.
func detect(name string) (fileKind, error) {
	f, err := os.Open(name)
	if err != nil {
		return kindDocument, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return kindDocument, err
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return kindDocument, nil
	}
	switch kind.Extension {
	case "zip", "epub":
		return kindArchive, nil
	case "xml", "html":
		return kindDocument, nil
	}
	return kindBinary, nil
}
