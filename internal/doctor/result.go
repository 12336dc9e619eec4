// Package doctor provides diagnostic checks for the hubtty environment.
package doctor

// Severity classifies a check outcome.
type Severity int

const (
	// SeverityPass means the check found nothing wrong.
	SeverityPass Severity = iota

	// SeverityInfo is a neutral observation, not a problem.
	SeverityInfo

	// SeverityWarning is a problem hubtty can run with.
	SeverityWarning

	// SeverityError is a problem that blocks normal operation.
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityPass:    "pass",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// CheckResult is the outcome of one diagnostic check.
type CheckResult struct {
	// Name identifies the check.
	Name string `json:"name"`

	// Category groups related checks (config, auth, git).
	Category string `json:"category"`

	// Status classifies the outcome.
	Status Severity `json:"status"`

	// Message describes what was found.
	Message string `json:"message"`

	// FixHint, when set, tells the user how to resolve the finding.
	FixHint string `json:"fix_hint,omitempty"`
}
