package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/hubtty/hubtty/internal/doctor"
)

// Handler is a slog.Handler for terminal output: kitchen timestamps,
// colored levels when the writer is a color-capable TTY, and masking of
// credential-looking attribute values.
type Handler struct {
	opts  slog.HandlerOptions
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string

	useColor bool
}

// Colors shared by every Handler instance; fatih/color strips the
// escape codes itself when color is globally disabled.
var (
	timeColor  = color.New(color.FgHiBlack)
	keyColor   = color.New(color.FgCyan)
	debugColor = color.New(color.FgMagenta)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// NewHandler creates a terminal text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{
		out:      out,
		mu:       &sync.Mutex{},
		useColor: SupportsColor(out),
	}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

// Handle formats the record into a single line and writes it in one
// call, so concurrent loggers never interleave within a line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line bytes.Buffer

	if !r.Time.IsZero() {
		line.WriteString(h.paint(timeColor, r.Time.Format(time.Kitchen)))
		line.WriteByte(' ')
	}

	level := r.Level.String()
	if h.useColor {
		level = h.levelColor(r.Level).Sprint(level)
	}
	fmt.Fprintf(&line, "%-5s %s", level, r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&line, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&line, a)
		return true
	})
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(line.Bytes())
	return err
}

func (h *Handler) levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return errorColor
	case level >= slog.LevelWarn:
		return warnColor
	case level >= slog.LevelInfo:
		return infoColor
	default:
		return debugColor
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.useColor {
		return s
	}
	return c.Sprint(s)
}

// writeAttr appends one key=value pair, masking values whose key looks
// credential-bearing or whose value carries a known token prefix.
func (h *Handler) writeAttr(line *bytes.Buffer, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	value := fmt.Sprint(a.Value.Any())
	if doctor.ShouldMask(a.Key) || doctor.ContainsTokenPrefix(value) {
		value = doctor.MaskValue(value)
	}

	fmt.Fprintf(line, " %s=%s", h.paint(keyColor, key), value)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	derived.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	derived.attrs = append(derived.attrs, h.attrs...)
	derived.attrs = append(derived.attrs, attrs...)
	return &derived
}

// WithGroup implements slog.Handler; groups become key prefixes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	derived := *h
	derived.group = strings.TrimPrefix(h.group+"."+name, ".")
	return &derived
}
