// Package cli implements the mindmap command-line interface.
//
// Commands:
//   - layout: compute a positioned layout and write it as JSON
//   - render: write SVG, JSON, DOT, PNG or PDF (--watch re-renders on save)
//   - explore: browse the tree in the terminal and toggle collapse
//   - convert: convert a document between JSON and YAML
//   - serve: run the HTTP API
//   - config, cache: manage the config file and the layout cache
//
// Every command logs through a charmbracelet/log logger carried in the
// command context; --verbose lowers its level to debug.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// levelFor maps the --verbose flag to a log level.
func levelFor(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// stageTimer reports how long each stage of a command took. Stages are
// logged at debug level, the final summary at info.
type stageTimer struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func startStages(l *log.Logger) *stageTimer {
	now := time.Now()
	return &stageTimer{logger: l, start: now, last: now}
}

// stage logs the time spent since the previous stage.
func (s *stageTimer) stage(name string) {
	now := time.Now()
	s.logger.Debug(name, "took", now.Sub(s.last).Round(time.Microsecond))
	s.last = now
}

// done logs msg with the total elapsed time and any extra key/value pairs.
func (s *stageTimer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command (nil ctx included).
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}
