package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ttrace/document"
	"ttrace/engine"
	"ttrace/events"
	"ttrace/media"
	"ttrace/render"
	"ttrace/state"
	"ttrace/timing"
	"ttrace/tracker"
	"ttrace/utils/debug"
)

// step is highlight state observed after a single playback action.
type step struct {
	Action   string
	Position float64
	Event    int
	Block    int
	Phrase   int
	Current  []string
	Previous int
	Scrolled string
}

// Play simulates playback of one media through requested positions and
// prints resulting highlight state.
func Play(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("play")

	src, err := sourceArg(cmd, log, 2)
	if err != nil {
		return err
	}
	positions, err := parsePositions(cmd.String("at"))
	if err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")
	env.CodePage = codePage(cmd.String("force-zip-cp"), log)

	s, err := open(ctx, env, src, cmd.String("timings"), log)
	if err != nil {
		return err
	}
	player, lm, err := s.selectMedia(cmd.String("media"))
	if err != nil {
		return err
	}
	steps, err := s.play(player, lm, positions, int(cmd.Int("click")), env.Cfg.Tracer.TimeOffset)
	if err != nil {
		return err
	}
	if err := writeSteps(output(cmd), lm.ID, steps); err != nil {
		return err
	}

	tw := debug.NewTreeWriter()
	tw.Element(0, lm.Transcript(), markupAttr)
	env.Rpt.StoreData("highlight.txt", []byte(tw.String()))

	if dst := cmd.Args().Get(1); dst != "" {
		if err := s.saveTo(dst, env, log); err != nil {
			return err
		}
		log.Info("Highlighted document written", zap.String("to", dst))
	}
	return nil
}

// selectMedia finds player by name or one of its sources, first linked
// player when name is empty.
func (s *session) selectMedia(name string) (*media.Player, *engine.LinkedMedia, error) {
	reg := s.engine.Registry()
	linkage := func(p *media.Player) *engine.LinkedMedia {
		for _, id := range reg.IDs() {
			if lm := reg.Get(id); lm.Media == media.Handle(p) {
				return lm
			}
		}
		return nil
	}
	for _, p := range s.players {
		if name != "" && p.Name() != name && !slices.Contains(p.Sources(), name) {
			continue
		}
		if lm := linkage(p); lm != nil {
			return p, lm, nil
		}
		if name != "" {
			return nil, nil, fmt.Errorf("media %q is not linked to any transcript", name)
		}
	}
	if name != "" {
		return nil, nil, fmt.Errorf("media %q was not found", name)
	}
	return nil, nil, errors.New("document has no linked media")
}

// play starts player and seeks it through positions, then clicks word when
// click is not negative.
func (s *session) play(p *media.Player, lm *engine.LinkedMedia, positions []float64, click int, offset float64) ([]step, error) {
	p.Play()

	var steps []step
	for _, pos := range positions {
		s.scroll.last = nil
		p.Seek(pos)
		steps = append(steps, s.snapshot(timing.FormatTimestamp(pos), p, lm, offset))
	}
	if click >= 0 {
		word := lm.Word(click)
		if word == nil {
			return nil, fmt.Errorf("word %d is not linked", click)
		}
		s.scroll.last = nil
		if !s.engine.HandleWordClick(word) {
			return nil, errors.New("click-to-seek is not enabled")
		}
		steps = append(steps, s.snapshot(fmt.Sprintf("click %d", click), p, lm, offset))
	}
	return steps, nil
}

func (s *session) snapshot(action string, p *media.Player, lm *engine.LinkedMedia, offset float64) step {
	st := step{
		Action:   action,
		Position: p.Position(),
		Event:    tracker.Find(lm.Events, p.Position()-offset),
		Block:    events.None,
		Phrase:   events.None,
	}
	if st.Event != tracker.None {
		st.Block, st.Phrase = lm.Events[st.Event].Block, lm.Events[st.Event].Phrase
	}
	for _, w := range lm.Transcript().FindElements(".//span") {
		switch {
		case document.HasClass(w, render.ClassCurrentWord):
			st.Current = append(st.Current, w.Text())
		case document.HasClass(w, render.ClassPreviousWord):
			st.Previous++
		}
	}
	if el := s.scroll.last; el != nil {
		st.Scrolled = describe(el)
	}
	return st
}

func (s *session) saveTo(dst string, env *state.LocalEnv, log *zap.Logger) error {
	data, err := saveDocument(s.doc, env)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dst); err == nil && !env.Overwrite {
		return fmt.Errorf("output file already exists: %s", dst)
	} else if err == nil {
		log.Warn("Overwriting existing file", zap.String("file", dst))
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	return nil
}

func writeSteps(w io.Writer, id string, steps []step) error {
	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		event := "-"
		if st.Event != tracker.None {
			event = strconv.Itoa(st.Event)
		}
		rows = append(rows, []string{
			st.Action,
			timing.FormatTimestamp(st.Position),
			event,
			groupText(st.Block),
			groupText(st.Phrase),
			strings.Join(st.Current, " "),
			strconv.Itoa(st.Previous),
			st.Scrolled,
		})
	}
	_, err := fmt.Fprintln(w, renderTable(id,
		[]string{"Action", "Position", "Event", "Block", "Phrase", "Current", "Previous", "Scrolled"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft}))
	return err
}

// parsePositions accepts comma separated list of seconds or timestamps.
func parsePositions(list string) ([]float64, error) {
	var result []float64
	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			result = append(result, v)
			continue
		}
		v, err := timing.ParseTimestamp(part)
		if err != nil {
			return nil, fmt.Errorf("bad position %q: %w", part, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func markupAttr(name string) bool {
	return name == "class" || strings.HasPrefix(name, "data-tt-")
}

// describe returns short element description for output.
func describe(el *etree.Element) string {
	var b strings.Builder
	b.WriteString(el.Tag)
	if id := el.SelectAttrValue("id", ""); id != "" {
		b.WriteString("#" + id)
	}
	if text := strings.Join(strings.Fields(textOf(el)), " "); text != "" {
		if r := []rune(text); len(r) > 24 {
			text = string(r[:24]) + "..."
		}
		fmt.Fprintf(&b, " %q", text)
	}
	return b.String()
}

func textOf(el *etree.Element) string {
	var b strings.Builder
	for _, t := range el.Child {
		switch n := t.(type) {
		case *etree.CharData:
			b.WriteString(n.Data)
		case *etree.Element:
			b.WriteString(textOf(n))
		}
	}
	return b.String()
}
