package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/username/parsegbx/src/logger"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedSlogHandler captures log records for assertions.
type BufferedSlogHandler struct {
	mu      sync.Mutex
	records []LogRecord
	t       *testing.T
}

// NewBufferedSlogHandler creates a handler that also mirrors records to t.Log.
func NewBufferedSlogHandler(t *testing.T) *BufferedSlogHandler {
	return &BufferedSlogHandler{t: t}
}

// Handle implements slog.Handler.
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	attrs := make(map[string]any, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.records = append(h.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// Enabled implements slog.Handler.
func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool { return true }

// WithAttrs implements slog.Handler. Attributes are shared with the parent's
// record buffer so child loggers stay observable.
func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &childHandler{parent: h, attrs: attrs}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *BufferedSlogHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of the captured records.
func (h *BufferedSlogHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// RecordsAt returns the captured records at exactly the given level.
func (h *BufferedSlogHandler) RecordsAt(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

type childHandler struct {
	parent *BufferedSlogHandler
	attrs  []slog.Attr
}

func (c *childHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return c.parent.Enabled(ctx, l)
}

func (c *childHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(c.attrs...)
	return c.parent.Handle(ctx, r)
}

func (c *childHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, c.attrs...), attrs...)
	return &childHandler{parent: c.parent, attrs: merged}
}

func (c *childHandler) WithGroup(string) slog.Handler { return c }

// CaptureLogs swaps the global logger for a buffered one until the test ends.
func CaptureLogs(t *testing.T) *BufferedSlogHandler {
	t.Helper()
	h := NewBufferedSlogHandler(t)
	prev := logger.L
	logger.L = slog.New(h)
	t.Cleanup(func() { logger.L = prev })
	return h
}
