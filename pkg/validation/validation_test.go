package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestReportSeverities(t *testing.T) {
	tests := []struct {
		name      string
		add       func(*Report, Finding)
		severity  Severity
		valid     bool
		summary   string
		collected func(*Report) []Finding
	}{
		{"error", (*Report).AddError, SeverityError, false, "1 error, 0 warnings, 0 notes", func(r *Report) []Finding { return r.Errors }},
		{"warning", (*Report).AddWarning, SeverityWarning, true, "0 errors, 1 warning, 0 notes", func(r *Report) []Finding { return r.Warnings }},
		{"info", (*Report).AddInfo, SeverityInfo, true, "0 errors, 0 warnings, 1 note", func(r *Report) []Finding { return r.Info }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport()
			tt.add(r, Finding{Stage: StageSchema, Severity: SeverityInfo, Message: "biomass flow is negative", Path: "biomass.flow_kg_h"})
			got := tt.collected(r)
			if len(got) != 1 {
				t.Fatalf("got %d findings, want 1", len(got))
			}
			if got[0].Severity != tt.severity {
				t.Errorf("severity = %s, want %s", got[0].Severity, tt.severity)
			}
			if r.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", r.Valid, tt.valid)
			}
			if r.Summary != tt.summary {
				t.Errorf("Summary = %q, want %q", r.Summary, tt.summary)
			}
		})
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport()
	if !r.Valid || r.Err() != nil {
		t.Error("new report should be valid")
	}
	if r.Errors == nil || r.Warnings == nil || r.Info == nil {
		t.Error("finding lists should encode as [] rather than null")
	}
	if r.Summary != "0 errors, 0 warnings, 0 notes" {
		t.Errorf("Summary = %q", r.Summary)
	}
}

func TestMerge(t *testing.T) {
	schema := NewReport()
	schema.AddWarning(Finding{Stage: StageSchema, Message: "moisture above 35%"})

	run := NewReport()
	run.AddError(Finding{Stage: StageSolver, Message: "oxygen balance", Constraint: "oxygen"})
	run.AddWarning(Finding{Stage: StageAnalytical, Message: "low LHV"})
	run.AddInfo(Finding{Stage: StageAnalytical, Message: "char"})

	schema.Merge(run)
	schema.Merge(nil)

	if schema.Valid {
		t.Error("merging an invalid report should invalidate")
	}
	if len(schema.Errors) != 1 || len(schema.Warnings) != 2 || len(schema.Info) != 1 {
		t.Errorf("got %d/%d/%d findings, want 1/2/1", len(schema.Errors), len(schema.Warnings), len(schema.Info))
	}
	if schema.Summary != "1 error, 2 warnings, 1 note" {
		t.Errorf("Summary = %q", schema.Summary)
	}

	clean := NewReport()
	notes := NewReport()
	notes.AddInfo(Finding{Stage: StageSchema, Message: "sulfur ignored"})
	clean.Merge(notes)
	if !clean.Valid {
		t.Error("merging two valid reports should stay valid")
	}
}

func TestErr(t *testing.T) {
	r := NewReport()
	r.AddWarning(Finding{Stage: StageSchema, Message: "not an error"})
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v for a report with only warnings", err)
	}

	r.AddError(Finding{Stage: StageSchema, Message: "must be positive", Path: "biomass.flow_kg_h"})
	err := r.Err()
	if err == nil || err.Error() != "invalid scenario: biomass.flow_kg_h: must be positive" {
		t.Fatalf("Err() = %v", err)
	}

	r.AddError(Finding{Stage: StageSolver, Message: "no feasible split", Constraint: "oxygen"})
	var verr *Error
	if !errors.As(r.Err(), &verr) {
		t.Fatalf("Err() = %T, want *Error", r.Err())
	}
	if len(verr.Findings) != 2 || verr.Findings[1].Constraint != "oxygen" {
		t.Errorf("Findings = %+v", verr.Findings)
	}
	if msg := verr.Error(); !strings.Contains(msg, "2 errors") || !strings.HasSuffix(msg, "; no feasible split") {
		t.Errorf("Error() = %q", msg)
	}
}
