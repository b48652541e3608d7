package doctor

import (
	"context"
	"time"
)

// Check is one diagnostic. Run must not panic and must honor ctx when it
// performs I/O.
type Check interface {
	Name() string
	Category() string
	Run(ctx context.Context) *CheckResult
}

// Runner runs checks in the order they were added.
type Runner struct {
	checks []Check
	now    func() time.Time
}

func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes every check. A check that returns nil is reported as an
// error under its own name.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, check := range r.checks {
		result := check.Run(ctx)
		if result == nil {
			result = &CheckResult{
				Name:     check.Name(),
				Category: check.Category(),
				Status:   SeverityError,
				Message:  "check returned no result",
			}
		}
		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}
	return report
}

// Report is the outcome of one Runner.Run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

func (r *Report) HasErrors() bool   { return r.Summary.Errors > 0 }
func (r *Report) HasWarnings() bool { return r.Summary.Warnings > 0 }

// ExitCode is 2 when any check failed, 1 when any warned, and 0 otherwise.
func (r *Report) ExitCode() int {
	switch {
	case r.HasErrors():
		return 2
	case r.HasWarnings():
		return 1
	}
	return 0
}
