package doctor

import "time"

// Check is one diagnostic probe of the environment.
type Check interface {
	// Name identifies the check in reports.
	Name() string

	// Category groups the check (config, auth, git).
	Category() string

	// Run executes the probe.
	Run() *CheckResult
}

// Runner executes checks in registration order and tallies a report.
type Runner struct {
	checks []Check
}

// NewRunner returns an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// AddCheck registers a check; checks run in registration order.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every registered check.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, check := range r.checks {
		report.add(check.Run())
	}
	return report
}

// Report is the aggregate outcome of a diagnostic run.
type Report struct {
	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`

	// Results holds each check's outcome in run order.
	Results []*CheckResult `json:"results"`

	// Summary counts results by severity.
	Summary Summary `json:"summary"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (r *Report) add(result *CheckResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case SeverityPass:
		r.Summary.Passed++
	case SeverityInfo:
		r.Summary.Info++
	case SeverityWarning:
		r.Summary.Warnings++
	case SeverityError:
		r.Summary.Errors++
	}
}

// HasErrors reports whether any check ended in SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check ended in SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
