package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDeskHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		session string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			session: "op-123",
			level:   slog.LevelInfo,
			message: "equipment created",
			want:    "2024-06-15T14:30:45Z\tINFO\top-123\tequipment created\n",
		},
		{
			name:    "debug level",
			session: "op-456",
			level:   slog.LevelDebug,
			message: "equipment updated",
			want:    "2024-06-15T14:30:45Z\tDEBUG\top-456\tequipment updated\n",
		},
		{
			name:    "with record attrs",
			session: "op-789",
			level:   slog.LevelInfo,
			message: "folder created",
			attrs:   []slog.Attr{slog.String("name", "Sathorn"), slog.Int("count", 42)},
			want:    "2024-06-15T14:30:45Z\tINFO\top-789\tfolder created\tname=Sathorn\tcount=42\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &deskHandler{w: &buf, session: tt.session, level: slog.LevelDebug}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestDeskHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &deskHandler{w: &buf, session: "op-1"}

	// Add pre-set attrs
	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "store")}).(*deskHandler)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "set", 0)
	r.AddAttrs(slog.String("key", "abc"))

	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=store") {
		t.Errorf("expected pre-set attr component=store, got: %q", got)
	}
	if !strings.Contains(got, "key=abc") {
		t.Errorf("expected record attr key=abc, got: %q", got)
	}
}

func TestDeskHandler_WithAttrs_doesNotMutateOriginal(t *testing.T) {
	var buf bytes.Buffer
	h := &deskHandler{w: &buf, session: "op-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("b", "2")}).(*deskHandler)

	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}
	if len(h2.attrs) != 2 {
		t.Errorf("new handler attrs: got %d, want 2", len(h2.attrs))
	}
}

func TestDeskHandler_Enabled(t *testing.T) {
	tests := []struct {
		min   slog.Level
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, slog.LevelDebug, true},
		{slog.LevelInfo, slog.LevelDebug, false},
		{slog.LevelInfo, slog.LevelInfo, true},
		{slog.LevelInfo, slog.LevelError, true},
	}
	for _, tt := range tests {
		h := &deskHandler{level: tt.min}
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) with min %v = %v, want %v", tt.level, tt.min, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()

	logger, f, err := newLogger(dir, "test-session", false)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("equipment seeded", "count", 6)
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "riverdesk.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "hidden") {
		t.Errorf("debug record written without verbose: %q", got)
	}
	if !strings.Contains(got, "\ttest-session\tequipment seeded\tcount=6\n") {
		t.Errorf("unexpected log line: %q", got)
	}
}
