package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/hubtty/hubtty/internal/auth"
	"github.com/hubtty/hubtty/internal/commentlink"
	hubttyerrors "github.com/hubtty/hubtty/internal/errors"
	"github.com/hubtty/hubtty/internal/keymap"
	"github.com/hubtty/hubtty/internal/palette"
	"github.com/hubtty/hubtty/internal/paths"
)

// Server is the selected server profile with every field normalized:
// URLs carry a trailing slash, paths are tilde-expanded, and defaults
// are applied.
type Server struct {
	Name       string
	Username   string
	APIURL     string
	URL        string
	GitURL     string
	GitRoot    string
	DBURI      string
	LogFile    string
	LockFile   string
	SocketPath string
}

// Dashboard is one bound dashboard query.
type Dashboard struct {
	Name    string
	Query   string
	SortBy  []string
	Reverse bool
	Key     string
}

// Approval is one category vote applied by a review shortcut.
type Approval struct {
	Category string
	Value    int
}

// ReviewKey is one bound review shortcut.
type ReviewKey struct {
	Approvals []Approval
	Message   string
	Submit    bool
	Key       string
}

// ChangeListOptions orders change lists.
type ChangeListOptions struct {
	SortBy  []string
	Reverse bool
}

// SizeColumn configures the change-size column. Type is one of graph,
// split-graph, number, disabled, or empty (explicit null: no column).
type SizeColumn struct {
	Type       string
	Thresholds []int
}

// Options selects what Resolve produces. Selection precedence for
// palette and keymap follows the original semantics: a `palette` /
// `keymap` key in the document wins over the option, which itself
// defaults to the built-in "default" entry.
type Options struct {
	// Path is an explicit configuration file path; empty searches the
	// default and fallback locations.
	Path string

	// ServerName selects a server profile by name; empty selects the
	// first profile. A non-empty name matching no profile is an error.
	ServerName string

	// PaletteName and KeymapName are the fallback selections used when
	// the document does not pick one itself.
	PaletteName string
	KeymapName  string

	// AuthPath overrides the credential store location (tests).
	AuthPath string

	// Tokens acquires tokens on credential cache miss. When nil,
	// credential resolution is skipped and Config.Token is empty; use
	// this for validation-only commands.
	Tokens auth.TokenSource
}

// Config is the resolved, fully-typed runtime configuration. It is
// constructed once by Resolve and never mutated afterwards; all
// consumers share it read-only.
type Config struct {
	// Path is the configuration file the document was read from.
	Path string

	// Server is the selected, normalized server profile.
	Server Server

	// Token is the cached or freshly-acquired API token, empty when
	// credential resolution was skipped.
	Token string

	// Palettes holds every palette (built-ins merged with document
	// entries); Palette is the selected one.
	Palettes map[string]*palette.Palette
	Palette  *palette.Palette

	// Keymaps holds every keymap; Keymap is the selected one.
	Keymaps map[string]*keymap.KeyMap
	Keymap  *keymap.KeyMap

	// CommentLinks are the comment rules in document order with the
	// synthetic bare-URL rule appended last.
	CommentLinks []*commentlink.CommentLink

	ChangeListQuery string
	DiffView        string

	// Dashboards and ReviewKeys preserve document order with
	// overwrite-in-place on duplicate keys.
	Dashboards *Keyed[Dashboard]
	ReviewKeys *Keyed[ReviewKey]

	// HideComments are the compiled author filters.
	HideComments []*regexp.Regexp

	ThreadChanges       bool
	DisplayTimesInUTC   bool
	HandleMouse         bool
	Breadcrumbs         bool
	CloseChangeOnReview bool

	ChangeListOptions ChangeListOptions
	ExpireAge         string
	SizeColumn        SizeColumn
}

// Resolve locates, validates, and resolves the configuration document
// into a Config. Construction is all-or-nothing: any failure returns a
// nil Config and an error from the taxonomy (location, schema, pattern,
// lookup, credential I/O).
func Resolve(opts Options) (*Config, error) {
	path, err := Locate(opts.Path)
	if err != nil {
		return nil, err
	}

	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Path: path}

	if cfg.Server, err = selectServer(doc, opts.ServerName); err != nil {
		return nil, err
	}

	if opts.Tokens != nil {
		store := auth.NewStore(opts.AuthPath, opts.Tokens)
		if cfg.Token, err = store.Token(cfg.Server.Name, cfg.Server.URL); err != nil {
			return nil, err
		}
	}

	if err = resolvePalettes(cfg, doc, opts.PaletteName); err != nil {
		return nil, err
	}
	if err = resolveKeymaps(cfg, doc, opts.KeymapName); err != nil {
		return nil, err
	}
	if err = resolveCommentLinks(cfg, doc); err != nil {
		return nil, err
	}
	resolveDashboards(cfg, doc)
	resolveReviewKeys(cfg, doc)
	if err = resolveHideComments(cfg, doc); err != nil {
		return nil, err
	}
	resolveScalars(cfg, doc)

	return cfg, nil
}

// selectServer picks a profile by name, or the first one when no name is
// requested, and normalizes its fields.
func selectServer(doc map[string]any, name string) (Server, error) {
	raw := listValue(doc, "servers")

	seen := make(map[string]bool, len(raw))
	var selected map[string]any
	for _, item := range raw {
		entry := item.(map[string]any)
		entryName := entry["name"].(string)
		if seen[entryName] {
			return Server{}, errors.Newf("duplicate server name %q", entryName)
		}
		seen[entryName] = true
		if selected == nil && (name == "" || name == entryName) {
			selected = entry
		}
	}
	if selected == nil {
		return Server{}, errors.Wrapf(hubttyerrors.ErrServerNotFound, "%q", name)
	}

	serverName := selected["name"].(string)
	s := Server{
		Name:       serverName,
		Username:   selected["username"].(string),
		APIURL:     normalizeURL(stringValue(selected, "api-url", DefaultAPIURL)),
		URL:        normalizeURL(stringValue(selected, "url", DefaultURL)),
		GitURL:     normalizeURL(stringValue(selected, "git-url", DefaultGitURL)),
		GitRoot:    paths.ExpandUser(selected["git-root"].(string)),
		DBURI:      stringValue(selected, "dburi", "sqlite:///"+paths.ExpandUser(defaultDBFile)),
		LogFile:    paths.ExpandUser(stringValue(selected, "log-file", defaultLogFile)),
		LockFile:   paths.ExpandUser(stringValue(selected, "lock-file", fmt.Sprintf(defaultLockFilePattern, serverName))),
		SocketPath: paths.ExpandUser(stringValue(selected, "socket", defaultSocket)),
	}
	return s, nil
}

// normalizeURL appends a trailing slash when absent. Already-normalized
// URLs pass through unchanged.
func normalizeURL(u string) string {
	if !strings.HasSuffix(u, "/") {
		return u + "/"
	}
	return u
}

// resolvePalettes merges document palettes onto the built-ins with
// override-by-name, else append, and selects one.
func resolvePalettes(cfg *Config, doc map[string]any, fallback string) error {
	cfg.Palettes = palette.BuiltIn()
	for _, item := range listValue(doc, "palettes") {
		entry := item.(map[string]any)
		name := entry["name"].(string)
		table := make(map[string][]string, len(entry)-1)
		for k, v := range entry {
			if k == "name" {
				continue
			}
			table[k] = stringList(v)
		}
		if existing, ok := cfg.Palettes[name]; ok {
			existing.Update(table)
		} else {
			cfg.Palettes[name] = palette.New(name, table)
		}
	}

	selected := stringValue(doc, "palette", defaultName(fallback))
	p, ok := cfg.Palettes[selected]
	if !ok {
		return errors.Wrapf(hubttyerrors.ErrUnknownPalette, "%q", selected)
	}
	cfg.Palette = p
	return nil
}

// resolveKeymaps merges document keymaps onto the built-ins with
// override-by-name, else append, and selects one.
func resolveKeymaps(cfg *Config, doc map[string]any, fallback string) error {
	cfg.Keymaps = keymap.BuiltIn()
	for _, item := range listValue(doc, "keymaps") {
		entry := item.(map[string]any)
		name := entry["name"].(string)
		bindings := make(map[string]any, len(entry)-1)
		for k, v := range entry {
			if k == "name" {
				continue
			}
			bindings[k] = v
		}
		if existing, ok := cfg.Keymaps[name]; ok {
			if err := existing.Update(bindings); err != nil {
				return err
			}
		} else {
			km, err := keymap.New(name, bindings)
			if err != nil {
				return err
			}
			cfg.Keymaps[name] = km
		}
	}

	selected := stringValue(doc, "keymap", defaultName(fallback))
	km, ok := cfg.Keymaps[selected]
	if !ok {
		return errors.Wrapf(hubttyerrors.ErrUnknownKeymap, "%q", selected)
	}
	cfg.Keymap = km
	return nil
}

// resolveCommentLinks compiles document rules in order and appends the
// synthetic bare-URL rule last.
func resolveCommentLinks(cfg *Config, doc map[string]any) error {
	raw := listValue(doc, "commentlinks")
	cfg.CommentLinks = make([]*commentlink.CommentLink, 0, len(raw)+1)
	for _, item := range raw {
		entry := item.(map[string]any)

		var replacements []commentlink.Replacement
		for _, r := range entry["replacements"].([]any) {
			replacements = append(replacements, parseReplacement(r.(map[string]any)))
		}

		link, err := commentlink.New(
			entry["match"].(string),
			replacements,
			stringValue(entry, "test-result", ""),
		)
		if err != nil {
			return err
		}
		cfg.CommentLinks = append(cfg.CommentLinks, link)
	}
	cfg.CommentLinks = append(cfg.CommentLinks, commentlink.BareURL())
	return nil
}

// parseReplacement converts one schema-validated replacement mapping to
// its typed variant.
func parseReplacement(m map[string]any) commentlink.Replacement {
	if t, ok := m["text"]; ok {
		switch v := t.(type) {
		case string:
			return commentlink.TextReplacement{Text: v}
		case map[string]any:
			return commentlink.TextReplacement{
				Color: stringValue(v, "color", ""),
				Text:  v["text"].(string),
			}
		}
	}
	if l, ok := m["link"]; ok {
		lm := l.(map[string]any)
		return commentlink.LinkReplacement{
			URL:  lm["url"].(string),
			Text: lm["text"].(string),
		}
	}
	sm := m["search"].(map[string]any)
	return commentlink.SearchReplacement{
		Query: sm["query"].(string),
		Text:  sm["text"].(string),
	}
}

func resolveDashboards(cfg *Config, doc map[string]any) {
	cfg.Dashboards = NewKeyed[Dashboard]()
	for _, item := range listValue(doc, "dashboards") {
		entry := item.(map[string]any)
		d := Dashboard{
			Name:    entry["name"].(string),
			Query:   entry["query"].(string),
			SortBy:  sortByList(entry["sort-by"]),
			Reverse: boolValue(entry, "reverse", false),
			Key:     entry["key"].(string),
		}
		cfg.Dashboards.Set(d.Key, d)
	}
}

func resolveReviewKeys(cfg *Config, doc map[string]any) {
	cfg.ReviewKeys = NewKeyed[ReviewKey]()
	for _, item := range listValue(doc, "reviewkeys") {
		entry := item.(map[string]any)
		rk := ReviewKey{
			Message: stringValue(entry, "message", ""),
			Submit:  boolValue(entry, "submit", false),
			Key:     entry["key"].(string),
		}
		for _, a := range entry["approvals"].([]any) {
			am := a.(map[string]any)
			rk.Approvals = append(rk.Approvals, Approval{
				Category: am["category"].(string),
				Value:    intValue(am["value"]),
			})
		}
		cfg.ReviewKeys.Set(rk.Key, rk)
	}
}

// resolveHideComments compiles author filters eagerly so a malformed
// pattern fails resolution instead of first use.
func resolveHideComments(cfg *Config, doc map[string]any) error {
	for _, item := range listValue(doc, "hide-comments") {
		entry := item.(map[string]any)
		pattern := entry["author"].(string)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return errors.Wrapf(err, "compiling hide-comments author pattern %q", pattern)
		}
		cfg.HideComments = append(cfg.HideComments, re)
	}
	return nil
}

func resolveScalars(cfg *Config, doc map[string]any) {
	cfg.ChangeListQuery = stringValue(doc, "change-list-query", DefaultChangeListQuery)
	cfg.DiffView = stringValue(doc, "diff-view", DefaultDiffView)
	cfg.ThreadChanges = boolValue(doc, "thread-changes", DefaultThreadChanges)
	cfg.DisplayTimesInUTC = boolValue(doc, "display-times-in-utc", DefaultDisplayTimesInUTC)
	cfg.Breadcrumbs = boolValue(doc, "breadcrumbs", DefaultBreadcrumbs)
	cfg.CloseChangeOnReview = boolValue(doc, "close-change-on-review", DefaultCloseChangeOnReview)
	cfg.HandleMouse = boolValue(doc, "handle-mouse", DefaultHandleMouse)
	cfg.ExpireAge = stringValue(doc, "expire-age", DefaultExpireAge)

	cfg.ChangeListOptions = ChangeListOptions{
		SortBy:  []string{DefaultSortBy},
		Reverse: DefaultSortReverse,
	}
	if raw, ok := doc["change-list-options"]; ok {
		opts := raw.(map[string]any)
		if sb, ok := opts["sort-by"]; ok {
			cfg.ChangeListOptions.SortBy = sortByList(sb)
		}
		cfg.ChangeListOptions.Reverse = boolValue(opts, "reverse", DefaultSortReverse)
	}

	cfg.SizeColumn = resolveSizeColumn(doc)
}

// resolveSizeColumn applies the mode-dependent threshold default: graph
// buckets into four segments, every other non-disabled mode into eight.
func resolveSizeColumn(doc map[string]any) SizeColumn {
	sc := SizeColumn{Type: DefaultSizeColumnType}
	var raw map[string]any
	if v, ok := doc["size-column"]; ok {
		raw = v.(map[string]any)
		if t, ok := raw["type"]; ok {
			if s, ok := t.(string); ok {
				sc.Type = s
			} else {
				sc.Type = "" // explicit null: no size column
			}
		}
	}

	if raw != nil {
		if t, ok := raw["thresholds"]; ok {
			for _, v := range t.([]any) {
				sc.Thresholds = append(sc.Thresholds, intValue(v))
			}
			return sc
		}
	}

	var defaults []int
	if sc.Type == DefaultSizeColumnType {
		defaults = DefaultGraphThresholds
	} else {
		defaults = DefaultSplitThresholds
	}
	sc.Thresholds = make([]int, len(defaults))
	copy(sc.Thresholds, defaults)
	return sc
}

// defaultName maps an empty selection to the built-in "default" entry.
func defaultName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

// Accessors below assume the document already passed schema validation;
// type assertions on declared shapes cannot fail.

func listValue(m map[string]any, key string) []any {
	if v, ok := m[key]; ok {
		return v.([]any)
	}
	return nil
}

func stringValue(m map[string]any, key, def string) string {
	if v, ok := m[key]; ok {
		return v.(string)
	}
	return def
}

func boolValue(m map[string]any, key string, def bool) bool {
	if v, ok := m[key]; ok {
		return v.(bool)
	}
	return def
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	return 0
}

func stringList(v any) []string {
	items := v.([]any)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.(string)
	}
	return out
}

// sortByList normalizes a sort-by value (string or list) to a list.
func sortByList(v any) []string {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return []string{s}
	case []any:
		return stringList(v)
	}
	return nil
}
