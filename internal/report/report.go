// Package report persists audit runs as JSON and Markdown artifacts.
package report

import (
	"context"
	"time"

	"github.com/jonesrussell/scout/internal/domain"
)

// Artifact names returned by writers.
const (
	ArtifactJSON     = "json"
	ArtifactMarkdown = "markdown"
)

// Report is one audit run ready to be persisted.
type Report struct {
	RunID       string               `json:"run_id"`
	Industry    string               `json:"industry"`
	Slug        string               `json:"industry_slug"`
	Notes       string               `json:"notes,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
	Counts      Counts               `json:"summary"`
	Records     []domain.AuditRecord `json:"results"`
}

// Counts summarizes record statuses.
type Counts struct {
	Total        int `json:"total"`
	Audited      int `json:"audited"`
	Failed       int `json:"failed"`
	Skipped      int `json:"skipped"`
	HighPriority int `json:"high_priority"`
}

// Count tallies records.
func Count(records []domain.AuditRecord) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case domain.StatusOK:
			c.Audited++
			if r.HighPriority() {
				c.HighPriority++
			}
		case domain.StatusFailed:
			c.Failed++
		case domain.StatusSkipped:
			c.Skipped++
		}
	}
	return c
}

// Writer persists a Report and returns the location of each artifact keyed
// by artifact name.
type Writer interface {
	Write(ctx context.Context, r Report) (map[string]string, error)
}
