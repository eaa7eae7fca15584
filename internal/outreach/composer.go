// Package outreach drafts tiered outreach emails from audit findings.
package outreach

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/scoring"
)

// DefaultIssue stands in for the specific issue when the audit found none.
const DefaultIssue = "some friction in your digital presence"

const (
	slowSubjectThreshold = 3.0
	followUpScore        = domain.HighPriorityScore
)

// Config holds the sender signature.
type Config struct {
	SenderName    string `env:"OUTREACH_SENDER_NAME"    yaml:"sender_name"`
	SenderCompany string `env:"OUTREACH_SENDER_COMPANY" yaml:"sender_company"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.SenderName == "" {
		c.SenderName = "[Your Name]"
	}
	if c.SenderCompany == "" {
		c.SenderCompany = "North Cloud Consulting"
	}
	return c
}

// Input carries everything a draft may reference.
type Input struct {
	Score         int
	FirstName     string
	CompanyName   string
	Domain        string
	SpecificIssue string
	Insight       string
	LoadTime      float64
}

// Email is a rendered draft.
type Email struct {
	Subject string
	Body    string
	Tier    domain.ContactTier
}

// String renders the draft the way it is stored on an AuditRecord.
func (e Email) String() string {
	return "Subject: " + e.Subject + "\n\n" + e.Body
}

// SpecificIssue picks the issue a draft leads with.
func SpecificIssue(issues []string) string {
	if len(issues) == 0 {
		return DefaultIssue
	}
	return issues[0]
}

// Composer renders drafts. It is safe for concurrent use.
type Composer struct {
	cfg    Config
	bodies map[domain.ContactTier]*template.Template
}

// NewComposer parses the body templates.
func NewComposer(cfg Config) *Composer {
	return &Composer{
		cfg: cfg.WithDefaults(),
		bodies: map[domain.ContactTier]*template.Template{
			domain.TierNamed:   template.Must(template.New("tier1").Parse(tierNamedBody)),
			domain.TierCompany: template.Must(template.New("tier2").Parse(tierCompanyBody)),
			domain.TierGeneric: template.Must(template.New("tier3").Parse(tierGenericBody)),
		},
	}
}

// Compose selects a subject and a body template for in and renders them.
func (c *Composer) Compose(in Input) (Email, error) {
	tier := domain.ContactInfo{FirstName: in.FirstName, CompanyName: in.CompanyName}.Tier()

	data := templateData{
		FirstName:     in.FirstName,
		CompanyName:   in.CompanyName,
		Domain:        in.Domain,
		SpecificIssue: in.SpecificIssue,
		Insight:       in.Insight,
		SenderName:    c.cfg.SenderName,
		SenderCompany: c.cfg.SenderCompany,
	}
	if data.SpecificIssue == "" {
		data.SpecificIssue = DefaultIssue
	}

	var body bytes.Buffer
	if err := c.bodies[tier].Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render tier %d body: %w", tier, err)
	}

	return Email{Subject: Subject(in), Body: body.String(), Tier: tier}, nil
}

// Subject applies the subject rules in order; the first match wins.
func Subject(in Input) string {
	switch {
	case in.LoadTime > slowSubjectThreshold:
		return fmt.Sprintf("%s takes %ss to load", in.Domain, scoring.FormatSeconds(in.LoadTime))
	case in.CompanyName != "" && in.Score >= followUpScore:
		return fmt.Sprintf("Re: %s's website", in.CompanyName)
	case in.CompanyName != "":
		return fmt.Sprintf("Quick question about %s's website", in.CompanyName)
	default:
		return "Quick feedback on " + in.Domain
	}
}

type templateData struct {
	FirstName     string
	CompanyName   string
	Domain        string
	SpecificIssue string
	Insight       string
	SenderName    string
	SenderCompany string
}
