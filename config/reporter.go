package config

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	fixzip "github.com/hidez8891/zip"

	"ttrace/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter. When destination could not
// be created report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either a copy of data or a file to be read when report is
// written.
type entry struct {
	path  string
	data  []byte
	stamp time.Time
}

// Report accumulates files and data for debug archive which is written when
// report is closed. All methods are safe to call on nil report, which means
// no report has been requested. Not to be used concurrently.
type Report struct {
	entries map[string]entry
	session string
	file    *os.File
}

// Close writes debug report out.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize(r.file)
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// SetSession records tracer session report belongs to.
func (r *Report) SetSession(id string) {
	if r == nil {
		return
	}
	r.session = id
}

// Store remembers the file to be put in the archive later, file is read when
// report is closed and skipped if it does not exist by then.
func (r *Report) Store(name, file string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	if old, exists := r.entries[name]; exists && old.path != file {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.path, file))
	}
	r.entries[name] = entry{path: file}
}

// StoreData saves copy of data to be put in the archive later. Storing under
// the same name again adds numbered version, "registry.txt" becomes
// "registry-1.txt" and so on.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.entries[r.version(name)] = entry{data: append([]byte{}, data...), stamp: time.Now()}
}

func (r *Report) version(name string) string {
	if _, exists := r.entries[name]; !exists {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		v := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, exists := r.entries[v]; !exists {
			return v
		}
	}
}

func (r *Report) finalize(out io.Writer) error {
	arc := fixzip.NewWriter(out)

	names := slices.Sorted(maps.Keys(r.entries))
	var manifest bytes.Buffer
	if r.session != "" {
		fmt.Fprintf(&manifest, "session\t%s\n", r.session)
	}

	for _, name := range names {
		e := r.entries[name]
		if e.data != nil {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			fmt.Fprintf(&manifest, "%s\t%s\t%d bytes\n", e.stamp.UTC().Format(time.RFC3339), name, len(e.data))
			continue
		}
		info, err := os.Stat(e.path)
		if err != nil || !info.Mode().IsRegular() {
			fmt.Fprintf(&manifest, "-\t%s\tabsent %s\n", name, e.path)
			continue
		}
		if err := saveLocalFile(arc, name, e.path, info.ModTime()); err != nil {
			return err
		}
		fmt.Fprintf(&manifest, "%s\t%s\t%s\n", info.ModTime().UTC().Format(time.RFC3339), name, e.path)
	}

	if err := saveFile(arc, "MANIFEST", time.Now(), &manifest); err != nil {
		return err
	}
	return arc.Close()
}

func saveLocalFile(dst *fixzip.Writer, name, file string, t time.Time) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveFile(dst, name, t, f)
}

func saveFile(dst *fixzip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&fixzip.FileHeader{Name: name, Method: fixzip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
