package palette

// A Palette maps display attribute names to terminal colour specs. Each
// entry is an ordered list of colour strings (foreground, background,
// then optional high-colour variants). An empty table means "terminal
// defaults" for every attribute.
type Palette struct {
	// Name identifies the palette for selection via the `palette` setting.
	Name string

	// Entries is an open attribute table; any key other than the
	// reserved `name` is permitted.
	Entries map[string][]string
}

// Built-in palette names. Both always exist and are never removed;
// document entries with these names amend them.
const (
	Default = "default"
	Light   = "light"
)

// lightEntries is the fixed built-in light theme, tuned for terminals
// with a light background.
var lightEntries = map[string][]string{
	"focused":         {"white", "dark blue"},
	"header":          {"white", "dark blue"},
	"focused-header":  {"yellow", "dark blue"},
	"link":            {"dark blue", ""},
	"focused-link":    {"white", "dark blue"},
	"footer":          {"black", "light gray"},
	"added-line":      {"dark green", ""},
	"added-word":      {"white", "dark green"},
	"removed-line":    {"dark red", ""},
	"removed-word":    {"white", "dark red"},
	"reviewed-change": {"dark gray", ""},
	"positive-label":  {"dark green", ""},
	"negative-label":  {"dark red", ""},
	"search-result":   {"black", "yellow"},
	"trailing-ws":     {"white", "dark red"},
	"line-number":     {"dark gray", ""},
	"change-data":     {"dark blue", ""},
	"comment":         {"black", "light gray"},
	"comment-name":    {"dark blue", "light gray"},
	"draft-comment":   {"dark red", "light gray"},
	"filename":        {"dark cyan", ""},
}

// New creates a palette with a copy of the given attribute table.
// A nil table yields an empty palette (terminal defaults).
func New(name string, entries map[string][]string) *Palette {
	p := &Palette{
		Name:    name,
		Entries: make(map[string][]string, len(entries)),
	}
	p.Update(entries)
	return p
}

// Update overlays the given attribute table onto the palette: keys
// present overwrite, keys absent are untouched. Value slices are copied
// so callers cannot alias the palette's state.
func (p *Palette) Update(entries map[string][]string) {
	for k, v := range entries {
		spec := make([]string, len(v))
		copy(spec, v)
		p.Entries[k] = spec
	}
}

// Attr returns the colour spec for an attribute, or nil when the
// palette leaves it at the terminal default.
func (p *Palette) Attr(name string) []string {
	return p.Entries[name]
}

// BuiltIn returns fresh copies of the built-in palettes, keyed by name:
// `default` (empty, terminal defaults) and `light`. Callers may merge
// document entries into the returned copies without affecting the
// built-in tables.
func BuiltIn() map[string]*Palette {
	return map[string]*Palette{
		Default: New(Default, nil),
		Light:   New(Light, lightEntries),
	}
}
