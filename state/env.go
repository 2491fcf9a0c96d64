// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ttrace/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place. It is built
// by root command before any subcommand runs and torn down after.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// subcommand options
	NoDirs    bool
	Overwrite bool
	Extract   bool
	CodePage  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

// EnvFromContext returns environment installed by ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

// ContextWithEnv attaches fresh environment to the context.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Logger returns logger for the program part, it never returns nil so
// parts could be used before logging is configured.
func (e *LocalEnv) Logger(name string) *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log.Named(name)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil || e.restoreStdLog != nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

// RestoreStdLog flushes logs and returns standard logger to its original
// state.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
