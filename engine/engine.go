// Package engine links media to transcripts of a document and follows
// playback with highlighting.
//
// Engine is not safe for concurrent use: Load, Cleanup and delivery of
// media notifications must be serialized by the caller.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"ttrace/config"
	"ttrace/css"
	"ttrace/document"
	"ttrace/media"
	"ttrace/render"
	"ttrace/text"
	"ttrace/timing"
	"ttrace/tracker"
)

// Locator returns media currently present, it is called again when
// nothing is found at first.
type Locator func() []media.Handle

// Option tunes engine.
type Option func(*Engine)

// WithScroller sets receiver of auto-scroll requests.
func WithScroller(s render.Scroller) Option {
	return func(e *Engine) {
		e.scroller = s
	}
}

// Engine is a single tracer instance for one document at a time.
type Engine struct {
	cfg      config.TracerConfig
	base     *zap.Logger
	log      *zap.Logger
	blocks   css.Group
	phrases  css.Group
	grouping timing.Grouping
	scroller render.Scroller

	session     uuid.UUID
	doc         *etree.Document
	transcripts []*document.Transcript
	registry    Registry
	tracker     *tracker.Tracker
	linked      map[media.Handle]string
	// first linkage of every transcript, other media of the same
	// transcript share its markup
	shared      map[*document.Transcript]*LinkedMedia
	cancels     []func()
	active      media.Handle
	position    func()
	loaded      bool
}

// New validates configuration and returns engine with nothing loaded.
// Configuration is copied and never changes afterwards.
func New(cfg config.TracerConfig, log *zap.Logger, opts ...Option) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("engine")

	if cfg.Fuzziness < 0 {
		return nil, fmt.Errorf("alignment fuzziness must not be negative: %d", cfg.Fuzziness)
	}

	parser := css.NewParser(log)
	blocks, err := parser.ParseSelector(cfg.BlockSelector)
	if err != nil {
		return nil, fmt.Errorf("bad block selector: %w", err)
	}
	phrases, err := parser.ParseSelector(cfg.PhraseSelector)
	if err != nil {
		return nil, fmt.Errorf("bad phrase selector: %w", err)
	}

	grouping := timing.Grouping{Blocks: cfg.Grouping.Blocks, Phrases: cfg.Grouping.Phrases}
	if grouping.Blocks == config.GroupingModeSentence || grouping.Phrases == config.GroupingModeSentence {
		lang := language.English
		if cfg.Grouping.Language != "" {
			if lang, err = language.Parse(cfg.Grouping.Language); err != nil {
				return nil, fmt.Errorf("bad grouping language: %w", err)
			}
		}
		grouping.Splitter = text.NewSplitter(lang, log)
	}

	e := &Engine{
		cfg:      cfg,
		base:     log,
		log:      log,
		blocks:   blocks,
		phrases:  phrases,
		grouping: grouping,
		tracker:  tracker.New(cfg.TimeOffset),
		linked:   make(map[media.Handle]string),
		shared:   make(map[*document.Transcript]*LinkedMedia),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Session returns identifier of the last Load.
func (e *Engine) Session() uuid.UUID {
	return e.session
}

// Registry returns current linkage of media.
func (e *Engine) Registry() *Registry {
	return &e.registry
}

// Transcripts returns prepared transcripts of the loaded document.
func (e *Engine) Transcripts() []*document.Transcript {
	return e.transcripts
}

// Active returns media which played last.
func (e *Engine) Active() media.Handle {
	return e.active
}

// Load tears down previous state, prepares transcripts of the document
// and links every located media to transcripts accepting one of its
// sources. Empty timing text leaves engine clean. When no media is located
// Load waits media_retry_delay and asks once more.
func (e *Engine) Load(ctx context.Context, doc *etree.Document, locate Locator, timingText string) error {
	e.Cleanup()
	if strings.TrimSpace(timingText) == "" {
		e.log.Debug("No timing text, nothing to load")
		return nil
	}

	session, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("unable to generate session id: %w", err)
	}
	e.session = session
	e.log = e.base.With(zap.Stringer("session", session))

	// previously tagged document must not be segmented twice
	document.Cleanup(doc, render.Classes...)
	e.doc = doc
	e.transcripts = document.Prepare(doc)

	timings := timing.ParseGrouped(timingText, e.grouping)
	e.log.Debug("Document prepared",
		zap.Int("transcripts", len(e.transcripts)),
		zap.Int("timings", len(timings)))

	var handles []media.Handle
	if locate != nil {
		handles = locate()
		if len(handles) == 0 {
			e.log.Debug("No media found, waiting", zap.Duration("delay", e.cfg.MediaRetryDelay))
			if err := sleep(ctx, e.cfg.MediaRetryDelay); err != nil {
				return fmt.Errorf("waiting for media: %w", err)
			}
			handles = locate()
		}
	}
	if len(handles) == 0 {
		e.log.Warn("No media found, nothing linked")
	}

	for _, h := range handles {
		e.setup(h, timings)
	}
	e.loaded = true
	return nil
}

// Cleanup removes listeners, linkage and all markup from the loaded
// document.
func (e *Engine) Cleanup() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
	if e.position != nil {
		e.position()
		e.position = nil
	}
	e.active = nil
	clear(e.linked)
	clear(e.shared)
	e.registry.Reset()
	e.tracker.Reset()
	e.transcripts = nil
	e.loaded = false
	if e.doc != nil {
		document.Cleanup(e.doc, render.Classes...)
		e.doc = nil
	}
}

func (e *Engine) setup(h media.Handle, timings []timing.WordTiming) {
	for _, t := range e.transcripts {
		for _, url := range h.Sources() {
			if t.Accepts(url) {
				e.link(h, url, t, timings)
				break
			}
		}
	}
	e.cancels = append(e.cancels,
		h.Subscribe(media.Play, e.HandlePlay),
		h.Subscribe(media.Ended, e.HandleEnded),
	)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
