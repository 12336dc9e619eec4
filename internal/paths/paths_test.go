package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestExpandUser(t *testing.T) {
	home := Home()
	if home == "" {
		t.Skip("home directory not available")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde slash", in: "~/git", want: filepath.Join(home, "git")},
		{name: "nested", in: "~/.hubtty.log", want: filepath.Join(home, ".hubtty.log")},
		{name: "absolute untouched", in: "/var/tmp/x", want: "/var/tmp/x"},
		{name: "relative untouched", in: "git/root", want: "git/root"},
		{name: "empty", in: "", want: ""},
		{name: "other user unsupported", in: "~bob/git", want: "~bob/git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandUser(tt.in); got != tt.want {
				t.Errorf("ExpandUser(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	got := DefaultConfigPath()
	if !strings.HasSuffix(got, filepath.Join("hubtty", "hubtty.yaml")) {
		t.Errorf("DefaultConfigPath() = %q, want hubtty/hubtty.yaml suffix", got)
	}
}

func TestDefaultAuthPath(t *testing.T) {
	got := DefaultAuthPath()
	if !strings.HasSuffix(got, filepath.Join("hubtty", "hubtty_auth.yaml")) {
		t.Errorf("DefaultAuthPath() = %q, want hubtty/hubtty_auth.yaml suffix", got)
	}
}

func TestFallbackConfigPath(t *testing.T) {
	got := FallbackConfigPath()
	if got == "" {
		t.Skip("home directory not available")
	}
	if filepath.Base(got) != ".hubtty.yaml" {
		t.Errorf("FallbackConfigPath() = %q, want .hubtty.yaml base", got)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b")

	if err := EnsureDir(target, 0); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stating dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
	if perm := info.Mode().Perm(); perm != DefaultDirPerm {
		t.Errorf("perm = %o, want %o", perm, DefaultDirPerm)
	}

	// Idempotent
	if err := EnsureDir(target, 0); err != nil {
		t.Errorf("EnsureDir() second call error: %v", err)
	}
}
