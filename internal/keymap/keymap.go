package keymap

import "github.com/cockroachdb/errors"

// A Binding is the set of key inputs mapped to one command: a list of
// alternates, each alternate an ordered sequence of keystrokes (a
// single-element sequence is an ordinary key, longer sequences are
// chords typed in order).
type Binding [][]string

// A KeyMap maps command names to bindings. The table is open: any key
// other than the reserved `name` is treated as a command.
type KeyMap struct {
	// Name identifies the keymap for selection via the `keymap` setting.
	Name string

	// Bindings maps command name to its normalized binding.
	Bindings map[string]Binding
}

// Built-in keymap names. Both always exist and are never removed;
// document entries with these names amend them.
const (
	Default = "default"
	Vi      = "vi"
)

// viBindings is the fixed built-in vi-style map. Commands not listed
// here keep the application's hard-wired defaults.
var viBindings = map[string]any{
	"cursor-up":        "k",
	"cursor-down":      "j",
	"cursor-left":      "h",
	"cursor-right":     "l",
	"cursor-top":       []any{[]any{"g", "g"}},
	"cursor-bottom":    "G",
	"cursor-page-up":   "ctrl u",
	"cursor-page-down": "ctrl d",
	"search":           "/",
	"next-selectable":  "tab",
	"prev-selectable":  "shift tab",
	"quit":             []any{[]any{"Z", "Z"}},
	"refresh":          []any{[]any{",", "r"}},
	"help":             []any{"?", "f1"},
}

// Normalize converts a document binding value to its canonical form.
// Accepted shapes: a single keystroke string, a list mixing keystroke
// strings and keystroke sequences (lists of strings). Anything else is
// an error naming the command.
func Normalize(command string, value any) (Binding, error) {
	switch v := value.(type) {
	case string:
		return Binding{{v}}, nil
	case []any:
		binding := make(Binding, 0, len(v))
		for _, alt := range v {
			switch a := alt.(type) {
			case string:
				binding = append(binding, []string{a})
			case []any:
				seq := make([]string, 0, len(a))
				for _, key := range a {
					s, ok := key.(string)
					if !ok {
						return nil, errors.Newf("keymap %q: keystroke must be a string, got %T", command, key)
					}
					seq = append(seq, s)
				}
				binding = append(binding, seq)
			default:
				return nil, errors.Newf("keymap %q: binding must be a keystroke or keystroke sequence, got %T", command, alt)
			}
		}
		return binding, nil
	default:
		return nil, errors.Newf("keymap %q: unsupported binding type %T", command, value)
	}
}

// New creates a keymap from a document entry body (the open mapping of
// command names to binding values, `name` already stripped).
func New(name string, raw map[string]any) (*KeyMap, error) {
	k := &KeyMap{
		Name:     name,
		Bindings: make(map[string]Binding, len(raw)),
	}
	if err := k.Update(raw); err != nil {
		return nil, err
	}
	return k, nil
}

// Update overlays document bindings onto the keymap: commands present
// overwrite, commands absent are untouched.
func (k *KeyMap) Update(raw map[string]any) error {
	for command, value := range raw {
		binding, err := Normalize(command, value)
		if err != nil {
			return err
		}
		k.Bindings[command] = binding
	}
	return nil
}

// Keys returns the alternates bound to a command, or nil when the
// keymap leaves the command at the application default.
func (k *KeyMap) Keys(command string) Binding {
	return k.Bindings[command]
}

// BuiltIn returns fresh copies of the built-in keymaps, keyed by name:
// `default` (empty) and `vi`. Callers may merge document entries into
// the returned copies without affecting the built-in tables.
func BuiltIn() map[string]*KeyMap {
	def, err := New(Default, nil)
	if err != nil {
		panic(err) // empty table cannot fail
	}
	vi, err := New(Vi, viBindings)
	if err != nil {
		panic(err) // built-in table is well-formed
	}
	return map[string]*KeyMap{
		Default: def,
		Vi:      vi,
	}
}
