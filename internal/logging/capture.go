package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Capture collects slog records for test assertions. Install it with
// CaptureForTest and undo with Restore (typically deferred).
type Capture struct {
	mu        sync.Mutex
	records   []slog.Record
	prev      *slog.Logger
	prevLevel slog.Level
}

// CaptureForTest swaps the global slog default for a capturing handler
// and drops the level to debug so everything is recorded.
func CaptureForTest() *Capture {
	c := &Capture{
		prev:      slog.Default(),
		prevLevel: level.Level(),
	}
	slog.SetDefault(slog.New(&captureHandler{capture: c}))
	SetLevel(slog.LevelDebug)
	return c
}

// Restore reinstates the previous global logger and level.
func (c *Capture) Restore() {
	slog.SetDefault(c.prev)
	level.Set(c.prevLevel)
}

// Has reports whether any captured record at the given level contains
// msgSubstring in its message.
func (c *Capture) Has(l slog.Level, msgSubstring string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.Level == l && strings.Contains(r.Message, msgSubstring) {
			return true
		}
	}
	return false
}

// Count returns the number of captured records at the given level.
func (c *Capture) Count(l slog.Level) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.records {
		if r.Level == l {
			n++
		}
	}
	return n
}

type captureHandler struct {
	capture *Capture
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.capture.mu.Lock()
	defer h.capture.mu.Unlock()
	h.capture.records = append(h.capture.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(string) slog.Handler { return h }
