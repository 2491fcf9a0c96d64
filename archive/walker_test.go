package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

type entry struct {
	name    string
	content string
	method  uint16
	nonUTF8 bool
}

func createZip(t *testing.T, entries []entry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.epub")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: e.method, NonUTF8: e.nonUTF8})
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

var book = []entry{
	{name: "mimetype", content: "application/epub+zip", method: zip.Store},
	{name: "OEBPS/text/ch1.xhtml", content: "<p>one</p>", method: zip.Deflate},
	{name: "OEBPS/text/ch2.xhtml", content: "<p>two</p>", method: zip.Deflate},
	{name: "OEBPS/audio/ch1.vtt", content: "WEBVTT", method: zip.Deflate},
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, book)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"OEBPS/text/", []string{"OEBPS/text/ch1.xhtml", "OEBPS/text/ch2.xhtml"}},
		{"", []string{"mimetype", "OEBPS/text/ch1.xhtml", "OEBPS/text/ch2.xhtml", "OEBPS/audio/ch1.vtt"}},
		{"nothing/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, nil, func(archive, name string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				if name != file.Name {
					t.Errorf("name = %s, want %s", name, file.Name)
				}
				visited = append(visited, name)
				return nil
			})
			if err != nil {
				t.Errorf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_Errors(t *testing.T) {
	t.Run("stops on callback error", func(t *testing.T) {
		stop := errors.New("stop")
		var calls int
		err := Walk(createZip(t, book), "", nil, func(string, string, *zip.File) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) || calls != 1 {
			t.Errorf("Walk() error = %v, calls = %d", err, calls)
		}
	})

	t.Run("unsafe path", func(t *testing.T) {
		zipPath := createZip(t, []entry{{name: "../evil.txt", content: "x"}})
		err := Walk(zipPath, "", nil, func(string, string, *zip.File) error { return nil })
		if err == nil {
			t.Error("Walk() expected error for path traversal")
		}
	})

	t.Run("not an archive", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "plain.txt")
		if err := os.WriteFile(p, []byte("plain"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(p, "", nil, func(string, string, *zip.File) error { return nil }); err == nil {
			t.Error("Walk() expected error")
		}
	})
}

func TestEntryName(t *testing.T) {
	raw, err := charmap.CodePage866.NewEncoder().String("глава.xhtml")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fh   zip.FileHeader
		cp   encoding.Encoding
		want string
	}{
		{"utf8", zip.FileHeader{Name: "глава.xhtml"}, charmap.CodePage866, "глава.xhtml"},
		{"forced", zip.FileHeader{Name: raw, NonUTF8: true}, charmap.CodePage866, "глава.xhtml"},
		{"no code page", zip.FileHeader{Name: raw, NonUTF8: true}, nil, raw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryName(&tt.fh, tt.cp); got != tt.want {
				t.Errorf("EntryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	zipPath := createZip(t, book)

	data, err := ReadFile(zipPath, "OEBPS/text/../audio/ch1.vtt", nil)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "WEBVTT" {
		t.Errorf("ReadFile() = %q", data)
	}

	// prefix of existing entry is not the entry
	if _, err := ReadFile(zipPath, "OEBPS/text/ch1", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile() error = %v, want ErrNotFound", err)
	}
}

func TestReplace(t *testing.T) {
	from := createZip(t, book)
	to := filepath.Join(t.TempDir(), "out.epub")

	if err := Replace(from, to, "OEBPS/text/ch2.xhtml", nil, []byte("<p>tagged</p>")); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	r, err := zip.OpenReader(to)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	want := []string{"mimetype", "OEBPS/text/ch1.xhtml", "OEBPS/text/ch2.xhtml", "OEBPS/audio/ch1.vtt"}
	if !slices.Equal(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}
	if r.File[0].Method != zip.Store {
		t.Error("mimetype must stay stored")
	}
	for name, content := range map[string]string{
		"OEBPS/text/ch1.xhtml": "<p>one</p>",
		"OEBPS/text/ch2.xhtml": "<p>tagged</p>",
	} {
		data, err := ReadFile(to, name, nil)
		if err != nil || string(data) != content {
			t.Errorf("%s = %q (%v), want %q", name, data, err, content)
		}
	}

	if err := Replace(from, filepath.Join(t.TempDir(), "x.epub"), "missing.xhtml", nil, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace() error = %v, want ErrNotFound", err)
	}
}
