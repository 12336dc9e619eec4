package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC), slog.LevelInfo, "resolved configuration", 0)
	r.AddAttrs(slog.String("palette", "light"))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("missing level: %q", out)
	}
	if !strings.Contains(out, "resolved configuration") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "palette=light") {
		t.Errorf("missing attr: %q", out)
	}
}

func TestHandler_MasksTokens(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "cached credential", 0)
	r.AddAttrs(
		slog.String("token", "ghp_supersecretvalue1234"),
		slog.String("note", "ghp_anothersecret999"),
	)

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Contains(out, "ghp_supersecretvalue1234") {
		t.Errorf("token value leaked by key match: %q", out)
	}
	if strings.Contains(out, "ghp_anothersecret999") {
		t.Errorf("token value leaked by prefix match: %q", out)
	}
	if !strings.Contains(out, "****") {
		t.Errorf("expected masked values: %q", out)
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := NewHandler(&buf, nil)
	derived := base.WithAttrs([]slog.Attr{slog.String("server", "github")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	if err := derived.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "server=github") {
		t.Errorf("missing inherited attr: %q", buf.String())
	}

	// Base handler must be unaffected
	buf.Reset()
	if err := base.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "server=github") {
		t.Errorf("base handler gained attrs: %q", buf.String())
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
