package trace

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"ttrace/config"
	"ttrace/state"
)

// Values holds variables available for output name template expansion.
type Values struct {
	// source base name without extension, archive name for documents in
	// archives
	Name string
	Ext  string
	// document name without extension, same as Name for plain files
	Document string
	Session  string
}

func sourceValues(src *Source, session string) Values {
	base := filepath.Base(src.Path)
	ext := filepath.Ext(base)
	doc := src.Name()
	return Values{
		Name:     strings.TrimSuffix(base, ext),
		Ext:      ext,
		Document: strings.TrimSuffix(doc, path.Ext(doc)),
		Session:  session,
	}
}

func expandTemplate(field string, v Values) (string, error) {
	tmpl, err := template.New(config.FileNameTemplateFieldName).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.FileNameTemplateFieldName, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildOutputPath returns output file name in destination directory. File
// keeps source extension, its name is either source name or expanded
// template which may contain subdirectories. Document extracted from archive
// is named after itself and keeps its directory inside archive unless
// directories are not requested.
func buildOutputPath(src *Source, dst, session string, env *state.LocalEnv) string {
	v := sourceValues(src, session)
	name, ext := v.Name, v.Ext
	if env.Extract && src.InArchive() {
		name, ext = v.Document, path.Ext(src.Entry)
		if !env.NoDirs {
			dst = filepath.Join(dst, filepath.FromSlash(path.Dir(src.Entry)))
		}
	}
	defaultFile := cleanPathSegment(name, env) + ext

	if env.Cfg.Output.FileNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}
	expanded, err := expandTemplate(env.Cfg.Output.FileNameTemplate, v)
	if err != nil || strings.TrimSpace(expanded) == "" {
		env.Logger("output").Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(dst, defaultFile)
	}

	segments := splitAndCleanPath(filepath.FromSlash(expanded))
	if len(segments) == 0 {
		return filepath.Join(dst, defaultFile)
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dst)
	for _, s := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(s, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+ext)
	return filepath.Join(parts...)
}

func splitAndCleanPath(p string) []string {
	p = strings.TrimSuffix(p, string(os.PathSeparator))
	segments := make([]string, 0, 8)
	for head, tail := filepath.Split(p); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.FileNameSlug {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// prepareOutput makes sure output could be written.
func prepareOutput(name string, src *Source, env *state.LocalEnv, log *zap.Logger) error {
	if same, _ := sameFile(name, src.Path); same {
		return fmt.Errorf("output would overwrite source: %s", name)
	}
	if _, err := os.Stat(name); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		if err = os.Remove(name); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

func sameFile(a, b string) (bool, error) {
	fa, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(fa, fb), nil
}
