// Package logging provides structured logging for hubtty built on log/slog.
//
// The default text handler is optimized for terminals: colorized output
// when the writer is a TTY (respecting NO_COLOR and TERM=dumb), kitchen
// timestamps, and automatic masking of credential-looking attribute
// values. A JSON handler is used for the per-server log file, and
// [MultiHandler] fans records out to both at once.
package logging
