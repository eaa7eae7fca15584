package pipeline

import (
	"time"

	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/report"
)

// Summary is the serializable outcome of an audit run.
type Summary struct {
	RunID    string `json:"run_id"`
	Industry string `json:"industry"`
	Slug     string `json:"industry_slug"`
	DryRun   bool   `json:"dry_run"`
	report.Counts
	Reports     map[string]string `json:"reports,omitempty"`
	ReportError string            `json:"report_error,omitempty"`
	Duration    time.Duration     `json:"duration_ns"`
}

// Summarize tallies records for run and attaches the report locations.
func Summarize(run *Run, records []domain.AuditRecord, reportPaths map[string]string) Summary {
	s := Summary{
		RunID:   run.ID,
		DryRun:  run.DryRun,
		Counts:  report.Count(records),
		Reports: reportPaths,
	}
	if run.Profile != nil {
		s.Industry = run.Profile.Name
		s.Slug = run.Profile.Slug
	}
	if !run.StartedAt.IsZero() {
		s.Duration = time.Since(run.StartedAt)
	}
	return s
}
