package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hubtty/hubtty/internal/auth"
	"github.com/hubtty/hubtty/internal/commentlink"
	hubttyerrors "github.com/hubtty/hubtty/internal/errors"
)

const minimalYAML = `servers:
  - name: github
    username: octocat
    git-root: ~/git
`

// resolveYAML writes content to a temp config file and resolves it with
// credential resolution skipped unless opts provides a token source.
func resolveYAML(t *testing.T, content string, opts Options) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hubtty.yaml")
	writeFile(t, path, content)
	opts.Path = path
	return Resolve(opts)
}

func mustResolve(t *testing.T, content string, opts Options) *Config {
	t.Helper()
	cfg, err := resolveYAML(t, content, opts)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return cfg
}

func TestResolve_FirstServerByDefault(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, `servers:
  - name: corp
    username: me
    git-root: /srv/git
  - name: github
    username: octocat
    git-root: ~/git
`, Options{})

	if cfg.Server.Name != "corp" {
		t.Errorf("selected server = %q, want first entry", cfg.Server.Name)
	}
}

func TestResolve_ServerByName(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, `servers:
  - name: corp
    username: me
    git-root: /srv/git
  - name: github
    username: octocat
    git-root: ~/git
`, Options{ServerName: "github"})

	if cfg.Server.Name != "github" {
		t.Errorf("selected server = %q, want requested name", cfg.Server.Name)
	}
}

func TestResolve_ServerNameNotFound(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, minimalYAML, Options{ServerName: "nope"})
	if !errors.Is(err, hubttyerrors.ErrServerNotFound) {
		t.Errorf("err = %v, want ErrServerNotFound", err)
	}
}

func TestResolve_DuplicateServerName(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, `servers:
  - name: github
    username: a
    git-root: /a
  - name: github
    username: b
    git-root: /b
`, Options{})
	if err == nil {
		t.Error("expected error for duplicate server names")
	}
}

func TestResolve_ServerDefaults(t *testing.T) {
	home := isolateHome(t)
	cfg := mustResolve(t, minimalYAML, Options{})

	s := cfg.Server
	if s.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q", s.APIURL)
	}
	if s.URL != DefaultURL {
		t.Errorf("URL = %q", s.URL)
	}
	if s.GitURL != DefaultGitURL {
		t.Errorf("GitURL = %q", s.GitURL)
	}
	if s.GitRoot != filepath.Join(home, "git") {
		t.Errorf("GitRoot = %q, want expanded", s.GitRoot)
	}
	if s.DBURI != "sqlite:///"+filepath.Join(home, ".hubtty.db") {
		t.Errorf("DBURI = %q", s.DBURI)
	}
	if s.LogFile != filepath.Join(home, ".hubtty.log") {
		t.Errorf("LogFile = %q", s.LogFile)
	}
	if s.LockFile != filepath.Join(home, ".hubtty.github.lock") {
		t.Errorf("LockFile = %q, want server name interpolated", s.LockFile)
	}
	if s.SocketPath != filepath.Join(home, ".hubtty.sock") {
		t.Errorf("SocketPath = %q", s.SocketPath)
	}
}

func TestResolve_URLNormalization(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, `servers:
  - name: corp
    username: me
    git-root: /srv/git
    api-url: "https://github.example.com/api/v3"
    url: "https://github.example.com"
    git-url: "ssh://git@github.example.com/"
`, Options{})

	if cfg.Server.APIURL != "https://github.example.com/api/v3/" {
		t.Errorf("APIURL = %q, want trailing slash appended", cfg.Server.APIURL)
	}
	if cfg.Server.URL != "https://github.example.com/" {
		t.Errorf("URL = %q, want trailing slash appended", cfg.Server.URL)
	}
	// Already normalized input is unchanged.
	if cfg.Server.GitURL != "ssh://git@github.example.com/" {
		t.Errorf("GitURL = %q, want unchanged", cfg.Server.GitURL)
	}
}

func TestResolve_TokenFromStore(t *testing.T) {
	isolateHome(t)
	authPath := filepath.Join(t.TempDir(), "auth.yaml")
	calls := 0
	source := auth.TokenSourceFunc(func(url string) (string, error) {
		calls++
		return "ghp_resolved", nil
	})

	cfg := mustResolve(t, minimalYAML, Options{AuthPath: authPath, Tokens: source})
	if cfg.Token != "ghp_resolved" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if calls != 1 {
		t.Errorf("acquisitions = %d, want 1", calls)
	}

	// Token resolution skipped entirely without a source.
	cfg = mustResolve(t, minimalYAML, Options{})
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty without source", cfg.Token)
	}
}

func TestResolve_DefaultPaletteOverlay(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`palettes:
  - name: default
    focused-header: ["yellow", "dark blue"]
`, Options{})

	def := cfg.Palettes["default"]
	if got := def.Attr("focused-header"); !reflect.DeepEqual(got, []string{"yellow", "dark blue"}) {
		t.Errorf("focused-header = %v, want document value", got)
	}
	// Only the overridden key is present; everything else stays at
	// terminal defaults.
	if len(def.Entries) != 1 {
		t.Errorf("default palette entries = %d, want 1", len(def.Entries))
	}
	if cfg.Palette != def {
		t.Error("selected palette should be the merged default")
	}
}

func TestResolve_LightPaletteOverlayKeepsBuiltinKeys(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`palette: light
palettes:
  - name: light
    header: ["black", "white"]
`, Options{})

	light := cfg.Palettes["light"]
	if got := light.Attr("header"); !reflect.DeepEqual(got, []string{"black", "white"}) {
		t.Errorf("header = %v, want overridden", got)
	}
	if got := light.Attr("footer"); got == nil {
		t.Error("built-in keys not mentioned must survive the overlay")
	}
	if cfg.Palette.Name != "light" {
		t.Errorf("selected palette = %q, want light", cfg.Palette.Name)
	}
}

func TestResolve_NewPaletteAppended(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`palettes:
  - name: solarized
    header: ["light gray", "dark blue"]
`, Options{PaletteName: "solarized"})

	if cfg.Palette.Name != "solarized" {
		t.Errorf("selected palette = %q", cfg.Palette.Name)
	}
	// Built-ins are never removed.
	for _, name := range []string{"default", "light"} {
		if _, ok := cfg.Palettes[name]; !ok {
			t.Errorf("built-in palette %q missing", name)
		}
	}
}

func TestResolve_DocumentPaletteKeyWinsOverOption(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+"palette: light\n", Options{PaletteName: "default"})
	if cfg.Palette.Name != "light" {
		t.Errorf("selected palette = %q, want document selection", cfg.Palette.Name)
	}
}

func TestResolve_UnknownPalette(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, minimalYAML, Options{PaletteName: "nope"})
	if !errors.Is(err, hubttyerrors.ErrUnknownPalette) {
		t.Errorf("err = %v, want ErrUnknownPalette", err)
	}
}

func TestResolve_NewKeymapAppendedAndSelectable(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`keymaps:
  - name: emacs
    quit: "ctrl x"
`, Options{KeymapName: "emacs"})

	if cfg.Keymap.Name != "emacs" {
		t.Errorf("selected keymap = %q", cfg.Keymap.Name)
	}
	for _, name := range []string{"default", "vi"} {
		if _, ok := cfg.Keymaps[name]; !ok {
			t.Errorf("built-in keymap %q missing", name)
		}
	}
}

func TestResolve_ViKeymapAmended(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`keymap: vi
keymaps:
  - name: vi
    cursor-down: "n"
`, Options{})

	vi := cfg.Keymaps["vi"]
	if got := vi.Keys("cursor-down"); !reflect.DeepEqual(got[0], []string{"n"}) {
		t.Errorf("cursor-down = %v, want amended", got)
	}
	if got := vi.Keys("cursor-up"); !reflect.DeepEqual(got[0], []string{"k"}) {
		t.Errorf("cursor-up = %v, want built-in binding untouched", got)
	}
}

func TestResolve_UnknownKeymap(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, minimalYAML, Options{KeymapName: "nope"})
	if !errors.Is(err, hubttyerrors.ErrUnknownKeymap) {
		t.Errorf("err = %v, want ErrUnknownKeymap", err)
	}
}

func TestResolve_CommentLinkOrdering(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`commentlinks:
  - match: "issue (?P<num>\\d+)"
    replacements:
      - link: {url: "{url}issues/{num}", text: "issue {num}"}
  - match: "recheck"
    replacements:
      - text: {color: "positive-label", text: "recheck"}
    test-result: ci
`, Options{})

	if got := len(cfg.CommentLinks); got != 3 {
		t.Fatalf("rules = %d, want 2 document rules + bare URL", got)
	}
	if !cfg.CommentLinks[0].Match.MatchString("issue 42") {
		t.Error("first rule should be the first document rule")
	}
	if cfg.CommentLinks[1].TestResult != "ci" {
		t.Error("second rule should be the second document rule")
	}
	last := cfg.CommentLinks[2]
	if last.Match.SubexpIndex("url") < 0 {
		t.Error("last rule must be the synthetic bare-URL rule")
	}
	if _, ok := last.Replacements[0].(commentlink.LinkReplacement); !ok {
		t.Errorf("bare-URL replacement kind = %T", last.Replacements[0])
	}
}

func TestResolve_BareURLRuleWithoutDocumentRules(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML, Options{})
	if got := len(cfg.CommentLinks); got != 1 {
		t.Fatalf("rules = %d, want just the bare-URL rule", got)
	}
}

func TestResolve_BadCommentLinkPattern(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, minimalYAML+`commentlinks:
  - match: "[unclosed"
    replacements:
      - text: "x"
`, Options{})
	if err == nil {
		t.Error("expected pattern error")
	}
}

func TestResolve_Dashboards(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`dashboards:
  - name: Mine
    query: "is:open author:self"
    key: "f2"
  - name: Review requests
    query: "is:open review-requested:self"
    key: "f3"
    sort-by: updated
    reverse: true
  - name: Mine v2
    query: "is:open author:self sort:updated"
    key: "f2"
`, Options{})

	if got := cfg.Dashboards.Keys(); !reflect.DeepEqual(got, []string{"f2", "f3"}) {
		t.Errorf("keys = %v, want duplicate overwritten in place", got)
	}
	d, _ := cfg.Dashboards.Get("f2")
	if d.Name != "Mine v2" {
		t.Errorf("f2 = %q, want later entry's content", d.Name)
	}
	d, _ = cfg.Dashboards.Get("f3")
	if !reflect.DeepEqual(d.SortBy, []string{"updated"}) || !d.Reverse {
		t.Errorf("f3 = %+v", d)
	}
}

func TestResolve_ReviewKeys(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`reviewkeys:
  - key: "meta 1"
    approvals:
      - category: Code-Review
        value: -1
  - key: "meta 2"
    approvals:
      - category: Code-Review
        value: 2
    submit: true
    message: "lgtm"
`, Options{})

	if cfg.ReviewKeys.Len() != 2 {
		t.Fatalf("reviewkeys = %d", cfg.ReviewKeys.Len())
	}
	rk, _ := cfg.ReviewKeys.Get("meta 2")
	if !rk.Submit || rk.Message != "lgtm" {
		t.Errorf("meta 2 = %+v", rk)
	}
	if !reflect.DeepEqual(rk.Approvals, []Approval{{Category: "Code-Review", Value: 2}}) {
		t.Errorf("approvals = %+v", rk.Approvals)
	}
}

func TestResolve_HideComments(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`hide-comments:
  - author: "^(.*CI|Jenkins)$"
`, Options{})

	if len(cfg.HideComments) != 1 {
		t.Fatalf("filters = %d", len(cfg.HideComments))
	}
	if !cfg.HideComments[0].MatchString("Jenkins") {
		t.Error("compiled filter should match")
	}
}

func TestResolve_BadHideCommentPattern(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, minimalYAML+`hide-comments:
  - author: "("
`, Options{})
	if err == nil {
		t.Error("expected pattern error for malformed author filter")
	}
}

func TestResolve_ScalarDefaults(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML, Options{})

	if cfg.ChangeListQuery != DefaultChangeListQuery {
		t.Errorf("ChangeListQuery = %q", cfg.ChangeListQuery)
	}
	if cfg.DiffView != DefaultDiffView {
		t.Errorf("DiffView = %q", cfg.DiffView)
	}
	if cfg.ExpireAge != DefaultExpireAge {
		t.Errorf("ExpireAge = %q", cfg.ExpireAge)
	}
	if !cfg.ThreadChanges || cfg.DisplayTimesInUTC || !cfg.Breadcrumbs ||
		cfg.CloseChangeOnReview || !cfg.HandleMouse {
		t.Errorf("boolean defaults wrong: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.ChangeListOptions, ChangeListOptions{SortBy: []string{"number"}, Reverse: false}) {
		t.Errorf("ChangeListOptions = %+v", cfg.ChangeListOptions)
	}
}

func TestResolve_ScalarOverrides(t *testing.T) {
	isolateHome(t)
	cfg := mustResolve(t, minimalYAML+`change-list-query: "is:open review-requested:self"
diff-view: unified
thread-changes: false
display-times-in-utc: true
change-list-options:
  sort-by: [updated, number]
  reverse: true
expire-age: "1 week"
`, Options{})

	if cfg.ChangeListQuery != "is:open review-requested:self" {
		t.Errorf("ChangeListQuery = %q", cfg.ChangeListQuery)
	}
	if cfg.DiffView != "unified" {
		t.Errorf("DiffView = %q", cfg.DiffView)
	}
	if cfg.ThreadChanges {
		t.Error("ThreadChanges should be overridden to false")
	}
	if !cfg.DisplayTimesInUTC {
		t.Error("DisplayTimesInUTC should be overridden to true")
	}
	want := ChangeListOptions{SortBy: []string{"updated", "number"}, Reverse: true}
	if !reflect.DeepEqual(cfg.ChangeListOptions, want) {
		t.Errorf("ChangeListOptions = %+v", cfg.ChangeListOptions)
	}
	if cfg.ExpireAge != "1 week" {
		t.Errorf("ExpireAge = %q", cfg.ExpireAge)
	}
}

func TestResolve_SizeColumnDefaults(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantType string
		want     []int
	}{
		{
			name:     "absent entirely",
			yaml:     "",
			wantType: "graph",
			want:     []int{1, 10, 100, 1000},
		},
		{
			name:     "graph without thresholds",
			yaml:     "size-column:\n  type: graph\n",
			wantType: "graph",
			want:     []int{1, 10, 100, 1000},
		},
		{
			name:     "number without thresholds",
			yaml:     "size-column:\n  type: number\n",
			wantType: "number",
			want:     []int{1, 10, 100, 200, 400, 600, 800, 1000},
		},
		{
			name:     "split-graph without thresholds",
			yaml:     "size-column:\n  type: split-graph\n",
			wantType: "split-graph",
			want:     []int{1, 10, 100, 200, 400, 600, 800, 1000},
		},
		{
			name:     "explicit thresholds kept",
			yaml:     "size-column:\n  type: number\n  thresholds: [2, 4, 8, 16, 32, 64, 128, 256]\n",
			wantType: "number",
			want:     []int{2, 4, 8, 16, 32, 64, 128, 256},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			cfg := mustResolve(t, minimalYAML+tt.yaml, Options{})
			if cfg.SizeColumn.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", cfg.SizeColumn.Type, tt.wantType)
			}
			if !reflect.DeepEqual(cfg.SizeColumn.Thresholds, tt.want) {
				t.Errorf("Thresholds = %v, want %v", cfg.SizeColumn.Thresholds, tt.want)
			}
		})
	}
}

func TestResolve_MissingFileFailsBeforeValidation(t *testing.T) {
	isolateHome(t)
	_, err := Resolve(Options{})
	if !errors.Is(err, hubttyerrors.ErrNoConfigFile) {
		t.Errorf("err = %v, want ErrNoConfigFile", err)
	}
}

func TestResolve_SchemaErrorSurfacesPath(t *testing.T) {
	isolateHome(t)
	_, err := resolveYAML(t, "servers: []\n", Options{})
	if err == nil {
		t.Fatal("expected schema error")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError in chain", err)
	}
	if schemaErr.Path != "servers" {
		t.Errorf("Path = %q", schemaErr.Path)
	}
}
