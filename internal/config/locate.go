package config

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	hubttyerrors "github.com/hubtty/hubtty/internal/errors"
	"github.com/hubtty/hubtty/internal/paths"
)

// Locate finds the configuration file, trying in order: the explicit
// path if non-empty, the default XDG location, and the legacy home
// dotfile. Each candidate is tilde-expanded before the existence check.
// When no candidate exists it returns ErrNoConfigFile; callers should
// print MissingFileAdvice and exit non-zero, since there is no sensible
// default document to fall back to.
func Locate(explicit string) (string, error) {
	candidates := []string{
		explicit,
		paths.DefaultConfigPath(),
		paths.FallbackConfigPath(),
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		expanded := paths.ExpandUser(candidate)
		if _, err := os.Stat(expanded); err == nil {
			return expanded, nil
		}
	}
	return "", errors.Wrapf(hubttyerrors.ErrNoConfigFile,
		"tried %s and %s", paths.DefaultConfigPath(), paths.FallbackConfigPath())
}

// MissingFileAdvice returns the user-facing guidance printed when no
// configuration file exists at any candidate path.
func MissingFileAdvice() string {
	return fmt.Sprintf(`Hubtty requires a configuration file at %s or %s

Several sample configuration files ship with Hubtty under share/hubtty/examples
in the root of the installation.

For more information, please see the README.
`, paths.DefaultConfigPath(), paths.FallbackConfigPath())
}
