package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")

	l.Info("dropped")
	l.Warn("kept", "column", "Profit")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "Profit", rec["column"])
	assert.Contains(t, rec, "time")
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text")
	l.Debug("hello", "rows", 3)

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = New(&buf, "info", "json")
	t.Cleanup(func() { L = prev })

	WithRun("run-42").Info("parsed")
	assert.Contains(t, buf.String(), `"runID":"run-42"`)
}
