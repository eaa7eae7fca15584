package domain

// Status is the externally visible state of an AuditRecord.
type Status string

// Record statuses.
const (
	StatusPending Status = "pending"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// HighPriorityScore is the final score at which a lead counts as high priority.
const HighPriorityScore = 8

// AuditRecord is one row of an audit report. Fields are filled as the target
// moves through the pipeline; a failed or skipped record keeps zero values for
// every stage it did not reach.
type AuditRecord struct {
	URL          string      `json:"url"`
	Domain       string      `json:"domain"`
	Industry     string      `json:"industry"`
	IndustrySlug string      `json:"industry_slug"`
	Status       Status      `json:"status"`
	StatusCode   int         `json:"status_code"`
	LoadTime     float64     `json:"load_time_sec"`
	HasSSL       bool        `json:"has_ssl"`
	CompanyName  string      `json:"company_name"`
	FirstName    string      `json:"first_name"`
	ContactEmail string      `json:"contact_email"`
	ContactTier  ContactTier `json:"contact_tier"`
	ContactNotes string      `json:"contact_notes,omitempty"`

	BaseScore      int      `json:"base_score"`
	DetectedIssues []string `json:"detected_issues"`
	IndustryBump   int      `json:"industry_score_bump"`
	FinalScore     int      `json:"final_score"`

	Insight         string `json:"insight"`
	InsightDegraded bool   `json:"insight_degraded"`
	EmailDraft      string `json:"email_draft"`
	Error           string `json:"error,omitempty"`
}

// HighPriority reports whether an audited record reached the high-priority score.
func (r AuditRecord) HighPriority() bool {
	return r.Status == StatusOK && r.FinalScore >= HighPriorityScore
}
