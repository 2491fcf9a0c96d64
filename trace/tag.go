package trace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ttrace/archive"
	"ttrace/document"
	"ttrace/state"
)

// Tag writes document with transcripts segmented and linked to media.
func Tag(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("tag")

	src, err := sourceArg(cmd, log, 2)
	if err != nil {
		return err
	}
	dst, err := absDestination(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	env.NoDirs, env.Overwrite, env.Extract = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("extract")
	env.CodePage = codePage(cmd.String("force-zip-cp"), log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	out, err := tag(ctx, env, src, dst, cmd.String("timings"), log)
	if err != nil {
		return err
	}
	log.Info("Tagged document written", zap.String("to", out))
	return nil
}

// tag processes single source, "dst" is destination directory. Returns name
// of written file.
func tag(ctx context.Context, env *state.LocalEnv, src, dst, timings string, log *zap.Logger) (string, error) {
	s, err := open(ctx, env, src, timings, log)
	if err != nil {
		return "", err
	}

	if !env.Cfg.Output.KeepSegmentation {
		for _, t := range s.engine.Transcripts() {
			document.Compact(t.Root)
		}
	}
	data, err := saveDocument(s.doc, env)
	if err != nil {
		return "", err
	}

	out := buildOutputPath(s.src, dst, s.engine.Session().String(), env)
	if err := prepareOutput(out, s.src, env, log); err != nil {
		return "", err
	}

	if s.src.InArchive() && !env.Extract {
		if err := archive.Replace(s.src.Path, out, s.src.Entry, env.CodePage, data); err != nil {
			return "", fmt.Errorf("unable to write archive: %w", err)
		}
	} else if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write document: %w", err)
	}

	env.Rpt.Store("result/"+filepath.Base(out), out)
	return out, nil
}
