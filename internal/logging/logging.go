package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format selects the log output encoding.
type Format string

const (
	// FormatText is the colored, human-oriented terminal format.
	FormatText Format = "text"
	// FormatJSON is the machine-oriented format used for log files.
	FormatJSON Format = "json"
)

// Config describes a logger to build.
type Config struct {
	// Level is the minimum level emitted.
	Level slog.Level
	// Format selects text or JSON output; anything else means text.
	Format Format
	// Output receives the log lines; nil means os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(NewHandler(out, opts))
}

// Default returns the logger used before flags are parsed: info-level
// text on stderr.
func Default() *slog.Logger {
	return New(Config{Level: slog.LevelInfo})
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromVerbosity maps the -v flag count to a level. The default is
// warnings only, since normal output belongs to the terminal UI; -v
// adds info and -vv adds debug.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// tWriter routes log lines through t.Log so they surface only on test
// failure or with -v.
type tWriter struct {
	t *testing.T
}

func (w *tWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a debug-level logger bound to the test's output.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{Level: slog.LevelDebug, Output: &tWriter{t: t}})
}
