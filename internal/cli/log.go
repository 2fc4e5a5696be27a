// Package cli implements the isofixture command-line interface.
//
// The commands are:
//   - generate: write a token graph, its isomorphic copies and a run manifest
//   - token: write only the token graph
//   - pattern: relabel an existing fixture file
//   - render: convert a fixture file to DOT, SVG or JSON
//   - inspect: print size, density and connectivity of a fixture file
//   - serve: generate fixtures over HTTP
//   - cache: manage the local token graph cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: wall-clock timestamps with centiseconds,
// filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline stage. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func newProgress(l *log.Logger, stage string) *progress {
	return &progress{logger: l, stage: stage, start: time.Now()}
}

// done logs the stage name with the given key/value fields and an elapsed
// field rounded to the millisecond, e.g.
//
//	INFO generate files=4 seed=7 elapsed=12ms
func (p *progress) done(keyvals ...any) {
	fields := append(keyvals[:len(keyvals):len(keyvals)], "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(p.stage, fields...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts that never went through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
