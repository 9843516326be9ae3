package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// L is the global logger instance. It falls back to slog's default until
// InitLogger runs, so packages can log from tests without initialisation.
var L = slog.Default()

// InitLogger initializes the global logger.
// Call this once at application startup, after loading config.
func InitLogger(logLevelStr, format string) {
	L = New(os.Stderr, logLevelStr, format)
	slog.SetDefault(L)
	L.Info("Logger initialized", "level", ParseLevel(logLevelStr).String(), "format", format)
}

// New builds a logger writing to w. Unknown levels fall back to INFO and
// unknown formats to JSON.
func New(w io.Writer, logLevelStr, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevelStr),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a LOG_LEVEL string onto a slog level.
func ParseLevel(logLevelStr string) slog.Level {
	switch strings.ToLower(logLevelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRun returns a child of the global logger tagged with a pipeline run id.
func WithRun(runID string) *slog.Logger {
	return L.With("runID", runID)
}
