// Package config implements hubtty's configuration resolution pipeline:
// locating the configuration document, validating it against a closed
// structural schema, merging user entries onto built-in defaults, and
// producing the immutable resolved configuration every other subsystem
// consumes.
//
// # Pipeline
//
// [Locate] finds the document (explicit path, XDG default, legacy
// fallback). [Load] parses and schema-checks it; the whole document is
// rejected on the first violation. [Resolve] runs the pipeline end to
// end and applies the merge semantics:
//
//   - palettes and keymaps: override-by-name, else append. Built-ins
//     ("default"/"light" palettes, "default"/"vi" keymaps) always exist;
//     a document entry with a built-in name amends it key by key.
//   - commentlinks: a pure ordered list in document order; a synthetic
//     bare-URL hyperlink rule is always appended last.
//   - dashboards and reviewkeys: keyed, order-preserving collections
//     with overwrite-in-place on duplicate keys.
//   - scalars: independent documented defaults ([DefaultDiffView] and
//     friends); size-column thresholds depend on the resolved mode.
//
// Resolution happens once at process start, before any concurrent
// subsystem runs. The returned [Config] is never mutated afterwards.
//
// # Failure modes
//
// No configuration file at any candidate path, a schema violation, a
// malformed filter pattern, an unknown server/palette/keymap name, or a
// credential store I/O failure all abort resolution; no partial Config
// is ever returned.
package config
