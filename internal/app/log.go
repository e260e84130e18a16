package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// deskHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<session>\t<message>\t<key=value ...>
//
// Records below level are dropped.
type deskHandler struct {
	w       io.Writer
	session string
	level   slog.Level
	attrs   []slog.Attr
}

func (h *deskHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *deskHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")

	line := fmt.Sprintf("%s\t%s\t%s\t%s", ts, r.Level.String(), h.session, r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf("\t%s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf("\t%s=%v", a.Key, a.Value)
		return true
	})

	// One write per record keeps lines whole when requests log concurrently.
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *deskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &deskHandler{
		w:       h.w,
		session: h.session,
		level:   h.level,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *deskHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that writes to both
// logDir/riverdesk.log and stderr. Debug records are kept only when verbose
// is set. It returns the slog.Logger, the open log file (for cleanup), and
// any error.
func newLogger(logDir, session string, verbose bool) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "riverdesk.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := &deskHandler{w: io.MultiWriter(f, os.Stderr), session: session, level: level}
	return slog.New(handler), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the desk.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
