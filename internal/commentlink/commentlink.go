package commentlink

import (
	"regexp"

	"github.com/cockroachdb/errors"
)

// A Replacement is one substitution variant applied to comment text that
// matched a rule. Exactly one of the three kinds is used per entry.
type Replacement interface {
	replacement()
}

// TextReplacement substitutes plain or styled text. Capture-group
// references of the form {group} in Text are expanded by the renderer.
type TextReplacement struct {
	// Color is an optional palette attribute for the substituted text.
	Color string
	// Text is the substitution template.
	Text string
}

// LinkReplacement substitutes a hyperlink.
type LinkReplacement struct {
	// URL is the hyperlink target template.
	URL string
	// Text is the visible text template.
	Text string
}

// SearchReplacement substitutes a link that runs a search query.
type SearchReplacement struct {
	// Query is the search query template.
	Query string
	// Text is the visible text template.
	Text string
}

func (TextReplacement) replacement()   {}
func (LinkReplacement) replacement()   {}
func (SearchReplacement) replacement() {}

// A CommentLink turns comment text matching a pattern into richer
// content. Rules are evaluated in document order; the synthetic bare-URL
// rule is always last.
type CommentLink struct {
	// Match is the compiled pattern. Named capture groups feed the
	// replacement templates.
	Match *regexp.Regexp

	// Replacements are tried in order by the renderer.
	Replacements []Replacement

	// TestResult optionally names the review category this rule's
	// matches report results for.
	TestResult string
}

// New compiles a comment-link rule. A malformed pattern is an error
// naming the pattern; rules are compiled eagerly at configuration
// resolution so a bad pattern fails startup rather than first render.
func New(match string, replacements []Replacement, testResult string) (*CommentLink, error) {
	re, err := regexp.Compile(match)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling commentlink pattern %q", match)
	}
	return &CommentLink{
		Match:        re,
		Replacements: replacements,
		TestResult:   testResult,
	}, nil
}

// bareURLPattern matches any http(s) URL appearing in comment text.
const bareURLPattern = `(?P<url>https?://\S*)`

// BareURL returns the synthetic rule that hyperlinks bare URLs. It is
// appended after all document rules regardless of document content.
func BareURL() *CommentLink {
	link, err := New(bareURLPattern, []Replacement{
		LinkReplacement{URL: "{url}", Text: "{url}"},
	}, "")
	if err != nil {
		panic(err) // the pattern is a constant
	}
	return link
}
