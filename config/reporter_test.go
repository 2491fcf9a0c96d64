package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer r.Close()

	out := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_WritesEntries(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	stored := filepath.Join(dir, "input.vtt")
	if err := os.WriteFile(stored, []byte("WEBVTT"), 0644); err != nil {
		t.Fatalf("write stored file: %v", err)
	}
	r.Store("timings.vtt", stored)
	r.Store("missing.txt", filepath.Join(dir, "does-not-exist"))
	r.StoreData("config.yaml", []byte("version: 1\n"))
	r.StoreData("config.yaml", []byte("version: 2\n"))
	r.SetSession("0192-session")

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	entries := readArchive(t, conf.Destination)
	if entries["timings.vtt"] != "WEBVTT" {
		t.Errorf("timings.vtt = %q", entries["timings.vtt"])
	}
	if entries["config.yaml"] != "version: 1\n" {
		t.Errorf("config.yaml = %q", entries["config.yaml"])
	}
	if entries["config-1.yaml"] != "version: 2\n" {
		t.Errorf("config-1.yaml = %q", entries["config-1.yaml"])
	}
	if _, ok := entries["missing.txt"]; ok {
		t.Error("absent file must not be archived")
	}
	manifest := entries["MANIFEST"]
	if !strings.HasPrefix(manifest, "session\t0192-session\n") {
		t.Errorf("MANIFEST has no session:\n%s", manifest)
	}
	if !strings.Contains(manifest, "missing.txt\tabsent ") {
		t.Errorf("MANIFEST does not list absent file:\n%s", manifest)
	}
	// versioned duplicate + manifest + two entries
	if len(entries) != 4 {
		t.Errorf("expected 4 entries, got %d: %v", len(entries), entries)
	}
}

func TestReportStore_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/one")
	r.Store("a", "/tmp/../tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("a", "/tmp/two")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	r.SetSession("s")
	if r.Name() != "" {
		t.Error("nil report must have empty name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReportStoreData_Versions(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	for range 3 {
		r.StoreData("registry.txt", []byte("x"))
	}
	r.StoreData("MANIFEST", nil)
	r.StoreData("MANIFEST", nil)
	for _, name := range []string{"registry.txt", "registry-1.txt", "registry-2.txt", "MANIFEST", "MANIFEST-1"} {
		if _, ok := r.entries[name]; !ok {
			t.Errorf("entry %s is missing", name)
		}
	}
}
