package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// File names composing hubtty's on-disk surface.
const (
	// appDir is the directory under the XDG config home holding hubtty files.
	appDir = "hubtty"

	// configFileName is the main configuration file name.
	configFileName = "hubtty.yaml"

	// authFileName is the credential store file name.
	authFileName = "hubtty_auth.yaml"

	// fallbackFileName is the legacy dotfile location in the home directory.
	fallbackFileName = ".hubtty.yaml"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandUser replaces a leading "~" or "~/" in path with the user's home
// directory, mirroring shell tilde expansion. Paths without a leading
// tilde are returned unchanged. "~user" forms are not supported and are
// returned unchanged.
func ExpandUser(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if path == "~" {
		return Home()
	}
	if strings.HasPrefix(path, "~/") {
		home := Home()
		if home == "" {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DefaultConfigPath returns the primary configuration file location:
// <ConfigHome>/hubtty/hubtty.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigHome(), appDir, configFileName)
}

// FallbackConfigPath returns the legacy configuration file location:
// ~/.hubtty.yaml.
func FallbackConfigPath() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, fallbackFileName)
}

// DefaultAuthPath returns the credential store location:
// <ConfigHome>/hubtty/hubtty_auth.yaml.
func DefaultAuthPath() string {
	return filepath.Join(ConfigHome(), appDir, authFileName)
}
