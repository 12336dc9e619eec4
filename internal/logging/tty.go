package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by writers backed by a file descriptor, such as
// os.File.
type fder interface {
	Fd() uintptr
}

// IsTTY reports whether the writer is attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI color output is appropriate for
// the writer. Color is off for non-terminals, when NO_COLOR is set
// (https://no-color.org), and when TERM=dumb.
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	if !isTTY {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
