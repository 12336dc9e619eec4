package auth

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	hubttyerrors "github.com/hubtty/hubtty/internal/errors"
	"github.com/hubtty/hubtty/internal/paths"
	"github.com/hubtty/hubtty/pkg/fileutil"
)

// A TokenSource acquires an authentication token for a server. It is the
// external collaborator boundary; the interactive flow behind it (device
// flow, token paste, ...) is not this package's concern.
type TokenSource interface {
	AcquireToken(serverURL string) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(serverURL string) (string, error)

// AcquireToken implements TokenSource.
func (f TokenSourceFunc) AcquireToken(serverURL string) (string, error) {
	return f(serverURL)
}

// storeFileMode is the permission forced on the credential file after
// every write: owner read/write only. This is a hard security invariant.
const storeFileMode os.FileMode = 0o600

// An Entry is the persisted record for one server.
type Entry struct {
	Token string `yaml:"token"`
}

// A Store is the persistent credential cache: a YAML mapping from server
// name to Entry, kept in a file with owner-only permissions.
//
// The store does no cross-process coordination. Two processes resolving
// configuration for the same previously-unauthenticated server can both
// miss the cache and acquire a token; the last writer wins. This is a
// documented limitation.
type Store struct {
	// Path is the credential file location.
	Path string

	// Source acquires tokens on cache miss. A nil Source turns misses
	// into errors.
	Source TokenSource
}

// NewStore creates a credential store at path backed by source. An empty
// path selects the default location under the XDG config home.
func NewStore(path string, source TokenSource) *Store {
	if path == "" {
		path = paths.DefaultAuthPath()
	}
	return &Store{Path: path, Source: source}
}

// Token returns the cached token for the named server, acquiring and
// persisting one on cache miss. A cache hit performs no write and no
// collaborator call. On miss the entire mapping is written back
// atomically and the file mode is forced to owner read/write.
func (s *Store) Token(serverName, serverURL string) (string, error) {
	store, err := s.read()
	if err != nil {
		return "", err
	}

	if entry, ok := store[serverName]; ok && entry.Token != "" {
		return entry.Token, nil
	}

	if s.Source == nil {
		return "", errors.Newf("no cached token for server %q and no token source configured", serverName)
	}

	token, err := s.Source.AcquireToken(serverURL)
	if err != nil {
		return "", errors.Wrapf(err, "acquiring token for server %q", serverName)
	}
	if token == "" {
		return "", errors.Newf("token source returned an empty token for server %q", serverName)
	}

	store[serverName] = Entry{Token: token}
	if err := s.write(store); err != nil {
		return "", err
	}

	return token, nil
}

// read loads the credential mapping, initializing an empty one when the
// file does not exist yet.
func (s *Store) read() (map[string]Entry, error) {
	if err := paths.EnsureDir(filepath.Dir(s.Path), 0); err != nil {
		return nil, hubttyerrors.NewSystemError(
			errors.Wrap(err, "creating credential directory"),
			"check permissions on "+filepath.Dir(s.Path))
	}

	data, err := fileutil.ReadFileWithLimit(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]Entry), nil
		}
		return nil, hubttyerrors.NewSystemError(
			errors.Wrap(err, "reading credential store"),
			"check permissions on "+s.Path)
	}

	store := make(map[string]Entry)
	if err := yaml.Unmarshal(data, &store); err != nil {
		return nil, errors.Wrap(err, "parsing credential store")
	}
	if store == nil {
		store = make(map[string]Entry)
	}
	return store, nil
}

// write persists the whole mapping atomically and locks down the file mode.
func (s *Store) write(store map[string]Entry) error {
	if err := fileutil.AtomicWriteYAMLWithPerm(s.Path, store, storeFileMode); err != nil {
		return hubttyerrors.NewSystemError(
			errors.Wrap(err, "writing credential store"),
			"check permissions on "+s.Path)
	}
	// The atomic writer applies the mode to the fresh file; chmod again
	// so a pre-existing file with looser bits is also corrected.
	if err := os.Chmod(s.Path, storeFileMode); err != nil {
		return hubttyerrors.NewSystemError(
			errors.Wrap(err, "restricting credential store permissions"),
			"check permissions on "+s.Path)
	}
	return nil
}
