// Package cli implements the gridkit command-line interface.
//
// This package provides commands that run the layout engine on layout
// documents: the pure operations (compact, move, resize, sync, resolve,
// validate), a terminal preview, an interactive player that drives drag and
// resize sessions from the keyboard, a file watcher and the HTTP server. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compact, move, resize, sync, resolve: transform a layout document
//   - validate: check a document without changing it
//   - preview: render a layout as a terminal grid
//   - play: drag and resize items with the keyboard
//   - watch: re-validate and preview a document whenever it is saved
//   - serve: run the HTTP API
//
// # Logging
//
// The global --verbose (-v) flag switches to debug level, which logs each
// operation with its item count and elapsed time. The logger travels in the
// command context.
//
// # Example
//
//	import "github.com/matzehuels/gridkit/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger for w that reports "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one layout operation.
type progress struct {
	logger *log.Logger
	op     string
	start  time.Time
}

func newProgress(l *log.Logger, op string) *progress {
	return &progress{logger: l, op: op, start: time.Now()}
}

// done logs the operation at debug level with its item count, elapsed time
// and any extra key/value pairs.
func (p *progress) done(items int, keyvals ...any) {
	kv := append([]any{"items", items, "elapsed", time.Since(p.start).Round(time.Microsecond)}, keyvals...)
	p.logger.Debug(p.op, kv...)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() when the
// root command has not attached one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
