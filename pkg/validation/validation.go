// Package validation collects what is wrong, or merely odd, about a gasifier
// scenario: input bounds checked before the model runs, analytical checks on
// the computed result, and equilibrium solver failures.
package validation

import (
	"fmt"
	"strings"
)

// Stage names the check that raised a finding.
type Stage string

const (
	StageSchema     Stage = "schema"
	StageAnalytical Stage = "analytical"
	StageSolver     Stage = "solver"
)

// Severity is set by the Report method that records the finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one problem or note about a scenario. Path is the scenario key
// it concerns, e.g. "agent.er". Constraint is set on solver findings and
// names the balance the solver could not satisfy (carbon, oxygen, wgsr...).
type Finding struct {
	Stage       Stage    `json:"stage"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Path        string   `json:"path"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Constraint  string   `json:"constraint,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report gathers the findings of every stage run on a scenario. A scenario
// is Valid as long as no error has been recorded; warnings and notes never
// block a run.
type Report struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Info     []Finding `json:"info"`
	Summary  string    `json:"summary"`
}

// NewReport returns a valid report with no findings.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Finding{},
		Warnings: []Finding{},
		Info:     []Finding{},
	}
	r.summarize()
	return r
}

// AddError records f as an error, which makes the scenario invalid.
func (r *Report) AddError(f Finding) { r.add(SeverityError, f) }

// AddWarning records f as a warning.
func (r *Report) AddWarning(f Finding) { r.add(SeverityWarning, f) }

// AddInfo records f as a note.
func (r *Report) AddInfo(f Finding) { r.add(SeverityInfo, f) }

func (r *Report) add(sev Severity, f Finding) {
	f.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, f)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
	default:
		r.Info = append(r.Info, f)
	}
	r.summarize()
}

// Merge appends the findings of other, for instance the run-time checks
// after the schema checks. A nil other is ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	r.Valid = r.Valid && other.Valid
	r.summarize()
}

// Err returns nil for a valid report, and otherwise an *Error holding the
// error findings.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Findings: r.Errors}
}

func (r *Report) summarize() {
	r.Summary = fmt.Sprintf("%s, %s, %s",
		plural(len(r.Errors), "error"), plural(len(r.Warnings), "warning"), plural(len(r.Info), "note"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Error is the error form of an invalid report.
type Error struct {
	Findings []Finding
}

func (e *Error) Error() string {
	switch len(e.Findings) {
	case 0:
		return "invalid scenario"
	case 1:
		return "invalid scenario: " + e.Findings[0].describe()
	}
	parts := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		parts[i] = f.describe()
	}
	return fmt.Sprintf("invalid scenario: %d errors: %s", len(e.Findings), strings.Join(parts, "; "))
}

func (f Finding) describe() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}
