package config

import (
	"fmt"
	"sort"
	"strings"
)

// A SchemaError reports the first structural violation found while
// validating a configuration document: the offending key path and the
// shape that was expected there.
type SchemaError struct {
	// Path locates the offending value, e.g. "servers[0].git-root".
	// Empty means the document root.
	Path string

	// Want describes the expected shape.
	Want string
}

func (e *SchemaError) Error() string {
	path := e.Path
	if path == "" {
		path = "document"
	}
	return fmt.Sprintf("%s: expected %s", path, e.Want)
}

// A node validates one shape in the configuration document. The schema
// is a tree of nodes walked recursively; validation stops at the first
// violation.
type node interface {
	check(path string, value any) error
	want() string
}

// str accepts any string.
type str struct{}

func (str) want() string { return "string" }

func (n str) check(path string, value any) error {
	if _, ok := value.(string); !ok {
		return &SchemaError{Path: path, Want: n.want()}
	}
	return nil
}

// boolean accepts any bool.
type boolean struct{}

func (boolean) want() string { return "boolean" }

func (n boolean) check(path string, value any) error {
	if _, ok := value.(bool); !ok {
		return &SchemaError{Path: path, Want: n.want()}
	}
	return nil
}

// integer accepts any integer scalar.
type integer struct{}

func (integer) want() string { return "integer" }

func (n integer) check(path string, value any) error {
	switch value.(type) {
	case int, int64, uint64:
		return nil
	}
	return &SchemaError{Path: path, Want: n.want()}
}

// enum accepts one of a fixed set of strings, optionally null.
type enum struct {
	allowed   []string
	allowNull bool
}

func (n enum) want() string {
	w := "one of " + strings.Join(n.allowed, ", ")
	if n.allowNull {
		w += ", or null"
	}
	return w
}

func (n enum) check(path string, value any) error {
	if value == nil && n.allowNull {
		return nil
	}
	if s, ok := value.(string); ok {
		for _, a := range n.allowed {
			if s == a {
				return nil
			}
		}
	}
	return &SchemaError{Path: path, Want: n.want()}
}

// oneOf accepts a value matching any of its alternatives.
type oneOf struct {
	alts []node
}

func (n oneOf) want() string {
	wants := make([]string, len(n.alts))
	for i, a := range n.alts {
		wants[i] = a.want()
	}
	return strings.Join(wants, " or ")
}

func (n oneOf) check(path string, value any) error {
	for _, a := range n.alts {
		if a.check(path, value) == nil {
			return nil
		}
	}
	return &SchemaError{Path: path, Want: n.want()}
}

// listOf accepts a sequence whose elements all match elem.
type listOf struct {
	elem     node
	minItems int
}

func (n listOf) want() string {
	w := "list of " + n.elem.want()
	if n.minItems > 0 {
		w = fmt.Sprintf("non-empty %s", w)
	}
	return w
}

func (n listOf) check(path string, value any) error {
	items, ok := value.([]any)
	if !ok {
		return &SchemaError{Path: path, Want: n.want()}
	}
	if len(items) < n.minItems {
		return &SchemaError{Path: path, Want: n.want()}
	}
	for i, item := range items {
		if err := n.elem.check(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
			return err
		}
	}
	return nil
}

// listOfN accepts a sequence of exactly n elements matching elem.
type listOfN struct {
	elem node
	n    int
}

func (n listOfN) want() string {
	return fmt.Sprintf("list of exactly %d %s values", n.n, n.elem.want())
}

func (n listOfN) check(path string, value any) error {
	items, ok := value.([]any)
	if !ok || len(items) != n.n {
		return &SchemaError{Path: path, Want: n.want()}
	}
	for i, item := range items {
		if err := n.elem.check(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
			return err
		}
	}
	return nil
}

// mapping accepts a string-keyed mapping with declared required and
// optional keys. Closed mappings reject unknown keys; open mappings
// validate unknown keys' values against openValue instead.
type mapping struct {
	required  map[string]node
	optional  map[string]node
	open      bool
	openValue node
}

func (mapping) want() string { return "mapping" }

func (n mapping) check(path string, value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return &SchemaError{Path: path, Want: n.want()}
	}

	// Deterministic error selection: walk keys in sorted order.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range sortedKeys(n.required) {
		v, present := m[name]
		if !present {
			return &SchemaError{Path: joinPath(path, name), Want: fmt.Sprintf("required key %q", name)}
		}
		if err := n.required[name].check(joinPath(path, name), v); err != nil {
			return err
		}
	}

	for _, k := range keys {
		if _, isRequired := n.required[k]; isRequired {
			continue
		}
		childPath := joinPath(path, k)
		if child, isOptional := n.optional[k]; isOptional {
			if err := child.check(childPath, m[k]); err != nil {
				return err
			}
			continue
		}
		if !n.open {
			return &SchemaError{Path: childPath, Want: "no such key (closed schema)"}
		}
		if n.openValue != nil {
			if err := n.openValue.check(childPath, m[k]); err != nil {
				return err
			}
		}
	}

	return nil
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Schema fragments shared between the document schema's branches.
var (
	sortByValue = enum{allowed: []string{"number", "updated", "last-seen", "project"}}
	sortByNode  = oneOf{alts: []node{sortByValue, listOf{elem: sortByValue}}}

	serverNode = mapping{
		required: map[string]node{
			"name":     str{},
			"username": str{},
			"git-root": str{},
		},
		optional: map[string]node{
			"api-url":   str{},
			"url":       str{},
			"git-url":   str{},
			"dburi":     str{},
			"log-file":  str{},
			"lock-file": str{},
			"socket":    str{},
		},
	}

	// Palette entry bodies are open: any key but the reserved `name`
	// holds a colour spec list.
	paletteNode = mapping{
		required:  map[string]node{"name": str{}},
		open:      true,
		openValue: listOf{elem: str{}},
	}

	// Keymap entry bodies are open: any key but the reserved `name`
	// holds a keystroke, a list of keystrokes, or a list of keystroke
	// sequences.
	bindingNode = oneOf{alts: []node{
		str{},
		listOf{elem: oneOf{alts: []node{str{}, listOf{elem: str{}}}}},
	}}
	keymapNode = mapping{
		required:  map[string]node{"name": str{}},
		open:      true,
		openValue: bindingNode,
	}

	textReplacementNode = mapping{
		required: map[string]node{
			"text": oneOf{alts: []node{
				str{},
				mapping{
					required: map[string]node{"text": str{}},
					optional: map[string]node{"color": str{}},
				},
			}},
		},
	}
	linkReplacementNode = mapping{
		required: map[string]node{
			"link": mapping{required: map[string]node{
				"url":  str{},
				"text": str{},
			}},
		},
	}
	searchReplacementNode = mapping{
		required: map[string]node{
			"search": mapping{required: map[string]node{
				"query": str{},
				"text":  str{},
			}},
		},
	}
	replacementNode = oneOf{alts: []node{
		textReplacementNode, linkReplacementNode, searchReplacementNode,
	}}

	commentLinkNode = mapping{
		required: map[string]node{
			"match":        str{},
			"replacements": listOf{elem: replacementNode},
		},
		optional: map[string]node{"test-result": str{}},
	}

	dashboardNode = mapping{
		required: map[string]node{
			"name":  str{},
			"query": str{},
			"key":   str{},
		},
		optional: map[string]node{
			"sort-by": sortByNode,
			"reverse": boolean{},
		},
	}

	reviewKeyApprovalNode = mapping{
		required: map[string]node{
			"category": str{},
			"value":    integer{},
		},
	}
	reviewKeyNode = mapping{
		required: map[string]node{
			"approvals": listOf{elem: reviewKeyApprovalNode},
			"key":       str{},
		},
		optional: map[string]node{
			"message": str{},
			"submit":  boolean{},
		},
	}

	hideCommentNode = mapping{
		required: map[string]node{"author": str{}},
	}

	changeListOptionsNode = mapping{
		optional: map[string]node{
			"sort-by": sortByNode,
			"reverse": boolean{},
		},
	}

	sizeColumnNode = mapping{
		required: map[string]node{
			"type": enum{
				allowed:   []string{"graph", "split-graph", "number", "disabled"},
				allowNull: true,
			},
		},
		optional: map[string]node{
			"thresholds": listOfN{elem: integer{}, n: 8},
		},
	}
)

// documentSchema is the closed top-level shape of the configuration
// document. A document with zero servers is invalid.
var documentSchema = mapping{
	required: map[string]node{
		"servers": listOf{elem: serverNode, minItems: 1},
	},
	optional: map[string]node{
		"palettes":               listOf{elem: paletteNode},
		"palette":                str{},
		"keymaps":                listOf{elem: keymapNode},
		"keymap":                 str{},
		"commentlinks":           listOf{elem: commentLinkNode},
		"dashboards":             listOf{elem: dashboardNode},
		"reviewkeys":             listOf{elem: reviewKeyNode},
		"change-list-query":      str{},
		"diff-view":              str{},
		"hide-comments":          listOf{elem: hideCommentNode},
		"thread-changes":         boolean{},
		"display-times-in-utc":   boolean{},
		"handle-mouse":           boolean{},
		"breadcrumbs":            boolean{},
		"close-change-on-review": boolean{},
		"change-list-options":    changeListOptionsNode,
		"expire-age":             str{},
		"size-column":            sizeColumnNode,
	},
}

// Validate checks a parsed document against the configuration schema.
// It returns a *SchemaError identifying the first offending path, or nil
// when the document is structurally valid. Validation never partially
// accepts a document.
func Validate(doc map[string]any) error {
	return documentSchema.check("", doc)
}
