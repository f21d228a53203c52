// Package logging configures the process-wide slog logger and hands out
// component-tagged loggers. The codec packages never log; logging is for
// the CLI and its collaborators.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Init installs the global slog logger. levelStr is one of "debug",
// "info", "warn", "error" (default info); format is "text" or "json"
// (default text). Output goes to stderr so encoded/decoded data can be
// piped cleanly from stdout.
func Init(levelStr, format string) {
	level.Set(parseLevel(levelStr))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// For returns a logger tagged with a component name. The logger delegates
// to slog.Default() at call time, so package-level loggers pick up later
// Init or test-capture changes.
func For(component string) *slog.Logger {
	return slog.New(&componentHandler{component: component})
}

// SetLevel changes the log level at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// componentHandler forwards each record to the current default handler
// with a "component" attribute attached.
type componentHandler struct {
	component string
}

func (h *componentHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, l)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("component", h.component))
	return slog.Default().Handler().Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

func (h *componentHandler) WithGroup(name string) slog.Handler { return h }
