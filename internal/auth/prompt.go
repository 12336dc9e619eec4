package auth

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// PromptSource is a TokenSource that asks the user to paste a personal
// access token, read without echo. It is the minimal interactive
// collaborator bundled with the CLI; richer flows can replace it.
type PromptSource struct {
	// In is the terminal to read from. Defaults to os.Stdin if nil.
	In *os.File

	// Out is where the prompt is written. Defaults to os.Stderr if nil.
	Out io.Writer
}

// AcquireToken prompts for a token for the given server URL.
func (p *PromptSource) AcquireToken(serverURL string) (string, error) {
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}

	if !term.IsTerminal(int(in.Fd())) {
		return "", errors.New("cannot prompt for a token: stdin is not a terminal")
	}

	fmt.Fprintf(out, "Create a personal access token at %ssettings/tokens\n", serverURL)
	fmt.Fprint(out, "Token: ")
	raw, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "reading token")
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}
