// Package archive reads documents from zip based containers (zip, epub)
// and writes them back.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"golang.org/x/text/encoding"
)

// ErrNotFound is returned when archive has no requested entry.
var ErrNotFound = errors.New("entry not found in archive")

// WalkFunc is called for every file of the archive visited by Walk. Name is
// entry name decoded according to requested code page. If an error is
// returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

// Walk visits every file of the archive whose name starts with prefix.
// Archives with absolute entry names or names containing ".." are rejected.
// Code page, when not nil, is used for names not marked as UTF-8.
func Walk(archive, prefix string, cp encoding.Encoding, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("unable to open archive (%s): %w", archive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		name := EntryName(&f.FileHeader, cp)
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) {
			if err := walkFn(archive, name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// EntryName returns file name of the entry, forcing code page for names
// not marked as UTF-8.
func EntryName(fh *zip.FileHeader, cp encoding.Encoding) string {
	return decodeName(fh.Name, fh.NonUTF8, cp)
}

func decodeName(name string, nonUTF8 bool, cp encoding.Encoding) string {
	if cp == nil || !nonUTF8 {
		return name
	}
	if n, err := cp.NewDecoder().String(name); err == nil {
		return n
	}
	return name
}

// ReadFile returns content of the entry. Name is cleaned before lookup so
// relative references like "text/../audio/a.vtt" work.
func ReadFile(archive, name string, cp encoding.Encoding) ([]byte, error) {
	name = path.Clean(strings.TrimPrefix(name, "/"))

	var data []byte
	found := errors.New("found")
	err := Walk(archive, name, cp, func(_, entry string, f *zip.File) error {
		if entry != name {
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		if data, err = io.ReadAll(r); err != nil {
			return err
		}
		return found
	})
	switch {
	case errors.Is(err, found):
		return data, nil
	case err != nil:
		return nil, fmt.Errorf("unable to read %q: %w", name, err)
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Replace copies archive from into to with content of entry name replaced
// by data. Entry names are decoded as Walk does. Other entries are copied
// as is, keeping their order and compression, so epub "mimetype" stays
// first and stored.
func Replace(from, to, name string, cp encoding.Encoding, data []byte) (err error) {
	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create archive file (%s): %w", to, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := fixzip.NewWriter(out)
	replaced := false
	for _, file := range r.File {
		if decodeName(file.Name, file.NonUTF8, cp) != name {
			// unset data descriptor flag
			file.Flags &= ^fixzip.FlagDataDescriptor
			if err := w.CopyFile(file); err != nil {
				return fmt.Errorf("unable to write target file (%s): %w", to, err)
			}
			continue
		}
		fw, err := w.CreateHeader(&fixzip.FileHeader{
			Name:     file.Name,
			Method:   fixzip.Deflate,
			Modified: file.Modified,
		})
		if err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
		replaced = true
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize target file (%s): %w", to, err)
	}
	if !replaced {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
