package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// newRecord builds a record at the given level with one attribute.
func newRecord(l slog.Level, msg string) slog.Record {
	r := slog.NewRecord(time.Date(2024, 1, 15, 14, 30, 45, 123_000_000, time.UTC), l, msg, 0)
	r.AddAttrs(slog.Int("node", 7))
	return r
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)

	if err := h.Handle(context.Background(), newRecord(slog.LevelWarn, "untrusted sender")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	want := "2024-01-15 14:30:45.123 [WRN] untrusted sender node=7\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf).WithAttrs([]slog.Attr{slog.Int("round", 3)}).WithGroup("engine")

	if err := h.Handle(context.Background(), newRecord(slog.LevelInfo, "round done")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, " engine.round=3") {
		t.Errorf("missing grouped preset attr in %q", out)
	}
	if !strings.Contains(out, " engine.node=7") {
		t.Errorf("missing grouped record attr in %q", out)
	}
}

func TestHandlerLevel(t *testing.T) {
	defer SetLevel(slog.LevelInfo)

	h := NewHandler(&bytes.Buffer{})

	SetLevel(slog.LevelError)
	if h.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled at error level")
	}

	SetLevel(slog.LevelDebug)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled at debug level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseLevel(%q) error = %v, want error %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
