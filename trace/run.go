// Package trace implements program subcommands: tagging documents, listing
// timed events and simulating playback.
package trace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"ttrace/document"
	"ttrace/engine"
	"ttrace/media"
	"ttrace/state"
)

type scrollRecorder struct {
	last *etree.Element
}

func (r *scrollRecorder) ScrollIntoView(el *etree.Element) {
	r.last = el
}

// session is a loaded document with its media linked.
type session struct {
	src     *Source
	doc     *etree.Document
	players []*media.Player
	engine  *engine.Engine
	scroll  *scrollRecorder
}

// open resolves source, finds timings and links all media of the document.
func open(ctx context.Context, env *state.LocalEnv, srcPath, timingsPath string, log *zap.Logger) (*session, error) {
	src, err := ResolveSource(ctx, srcPath, env.CodePage)
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("unable to parse document (%s): %w", src, err)
	}
	env.Rpt.StoreData("source/"+src.Name(), src.Data)

	players := media.Players(doc)
	timings, origin, err := loadTimings(src, players, timingsPath)
	if err != nil {
		return nil, err
	}
	env.Rpt.StoreData("source/timings.vtt", []byte(timings))

	rec := &scrollRecorder{}
	e, err := engine.New(env.Cfg.Tracer, log, engine.WithScroller(rec))
	if err != nil {
		return nil, fmt.Errorf("unable to prepare tracer: %w", err)
	}
	locate := func() []media.Handle {
		handles := make([]media.Handle, 0, len(players))
		for _, p := range players {
			handles = append(handles, p)
		}
		return handles
	}
	if err := e.Load(ctx, doc, locate, timings); err != nil {
		return nil, fmt.Errorf("unable to load transcripts: %w", err)
	}
	env.Rpt.SetSession(e.Session().String())
	env.Rpt.StoreData("registry.txt", []byte(e.Registry().String()))

	log.Info("Document loaded",
		zap.Stringer("source", src),
		zap.String("timings", origin),
		zap.Int("media", len(players)),
		zap.Int("transcripts", len(e.Transcripts())),
		zap.Int("linked", e.Registry().Len()),
		zap.Stringer("session", e.Session()))

	return &session{src: src, doc: doc, players: players, engine: e, scroll: rec}, nil
}

// loadTimings reads timing text either from the file or from the first
// metadata track of document media.
func loadTimings(src *Source, players []*media.Player, file string) (string, string, error) {
	var (
		data   []byte
		origin string
		err    error
	)
	switch {
	case file != "":
		origin = file
		if data, err = os.ReadFile(file); err != nil {
			return "", "", fmt.Errorf("unable to read timings: %w", err)
		}
	default:
		for _, p := range players {
			if p.Track() == "" {
				continue
			}
			origin = p.Track()
			if data, err = src.ReadRelative(origin); err != nil {
				return "", "", fmt.Errorf("unable to read metadata track: %w", err)
			}
			break
		}
		if origin == "" {
			return "", "", errors.New("no timing source, use --timings or add metadata track to document media")
		}
	}
	return strings.TrimPrefix(string(data), "\ufeff"), origin, nil
}

// codePage returns forced encoding of non UTF-8 file names in archives.
func codePage(cp string, log *zap.Logger) encoding.Encoding {
	if len(cp) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	return enc
}

func sourceArg(cmd *cli.Command, log *zap.Logger, maxArgs int) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > maxArgs {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[maxArgs:]))
	}
	return src, nil
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func saveDocument(doc *etree.Document, env *state.LocalEnv) ([]byte, error) {
	var buf bytes.Buffer
	if err := document.Save(doc, &buf, env.Cfg.Output.Indent, env.Cfg.Output.XMLDeclaration); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func absDestination(dst string) (string, error) {
	if len(dst) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(dst)
}
