package trace

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"

	"ttrace/engine"
	"ttrace/events"
	"ttrace/state"
	"ttrace/timing"
)

// Events prints timed events of every linked media.
func Events(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("events")

	src, err := sourceArg(cmd, log, 1)
	if err != nil {
		return err
	}
	env.CodePage = codePage(cmd.String("force-zip-cp"), log)

	s, err := open(ctx, env, src, cmd.String("timings"), log)
	if err != nil {
		return err
	}
	return writeEvents(output(cmd), s.engine.Registry())
}

func writeEvents(w io.Writer, reg *engine.Registry) error {
	for _, id := range reg.IDs() {
		lm := reg.Get(id)
		rows := make([][]string, 0, len(lm.Events))
		for i, ev := range lm.Events {
			rows = append(rows, []string{
				strconv.Itoa(i),
				timing.FormatTimestamp(ev.Seconds),
				wordsText(lm, ev.Words),
				groupText(ev.Block),
				groupText(ev.Phrase),
			})
		}
		title := fmt.Sprintf("%s: transcript %d, %d of %d words linked", id, lm.TranscriptIndex, lm.Linked(), len(lm.Timings))
		table := renderTable(title,
			[]string{"#", "Start", "Words", "Block", "Phrase"}, rows,
			[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight})
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}
	return nil
}

func wordsText(lm *engine.LinkedMedia, words []int) string {
	parts := make([]string, 0, len(words))
	for _, i := range words {
		if el := lm.Word(i); el != nil {
			parts = append(parts, el.Text())
		}
	}
	return strings.Join(parts, " ")
}

func groupText(index int) string {
	if index == events.None {
		return "-"
	}
	return strconv.Itoa(index)
}
