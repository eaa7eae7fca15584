// Package industry loads and validates the vertical-specific profiles that
// parameterize scoring, prompting and outreach.
package industry

import (
	"fmt"
	"strings"
)

// Bucket names a priority-indicator group.
type Bucket string

// Priority-indicator buckets.
const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

const (
	promptPainPoints   = 4
	promptTrustSignals = 3
	promptHighFlags    = 3
)

// PriorityIndicators groups indicator phrases by priority.
type PriorityIndicators struct {
	High   []string `json:"high"   yaml:"high"`
	Medium []string `json:"medium" yaml:"medium"`
	Low    []string `json:"low"    yaml:"low"`
}

// Profile is a validated industry configuration. It is treated as read-only
// once loaded.
type Profile struct {
	Name               string             `json:"name"                yaml:"name"`
	Slug               string             `json:"slug"                yaml:"slug"`
	SearchKeywords     []string           `json:"search_keywords"     yaml:"search_keywords"`
	Locations          []string           `json:"locations"           yaml:"locations"`
	PainPoints         []string           `json:"pain_points"         yaml:"pain_points"`
	KPIs               []string           `json:"kpis"                yaml:"kpis"`
	TrustSignals       []string           `json:"trust_signals"       yaml:"trust_signals"`
	OfferAngle         string             `json:"offer_angle"         yaml:"offer_angle"`
	AnalysisFocus      string             `json:"analysis_focus"      yaml:"analysis_focus"`
	OutreachAngle      string             `json:"outreach_angle"      yaml:"outreach_angle"`
	PriorityIndicators PriorityIndicators `json:"priority_indicators" yaml:"priority_indicators"`

	// Runtime additions supplied by the caller of a run.
	CustomKeywords  []string `json:"custom_keywords,omitempty"  yaml:"-"`
	CustomLocations []string `json:"custom_locations,omitempty" yaml:"-"`
	Notes           string   `json:"notes,omitempty"            yaml:"-"`
}

// AllKeywords returns the configured search keywords followed by runtime additions.
func (p *Profile) AllKeywords() []string {
	return concat(p.SearchKeywords, p.CustomKeywords)
}

// AllLocations returns the configured locations followed by runtime additions.
func (p *Profile) AllLocations() []string {
	return concat(p.Locations, p.CustomLocations)
}

// Indicators returns the indicator phrases for bucket.
func (p *Profile) Indicators(bucket Bucket) []string {
	switch bucket {
	case BucketHigh:
		return p.PriorityIndicators.High
	case BucketMedium:
		return p.PriorityIndicators.Medium
	case BucketLow:
		return p.PriorityIndicators.Low
	default:
		return nil
	}
}

// PromptContext renders the industry block injected into analysis prompts.
func (p *Profile) PromptContext() string {
	var b strings.Builder

	fmt.Fprintf(&b, "INDUSTRY: %s\n", p.Name)
	fmt.Fprintf(&b, "ANALYSIS FOCUS: %s\n\n", p.AnalysisFocus)
	b.WriteString("COMMON PAIN POINTS IN THIS VERTICAL:\n")
	b.WriteString(bulletList(head(p.PainPoints, promptPainPoints)))
	b.WriteString("\n\nKEY TRUST SIGNALS CLIENTS LOOK FOR:\n")
	b.WriteString(bulletList(head(p.TrustSignals, promptTrustSignals)))
	b.WriteString("\n\nHIGH PRIORITY RED FLAGS TO DETECT:\n")
	b.WriteString(bulletList(head(p.PriorityIndicators.High, promptHighFlags)))

	return b.String()
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + item
	}
	return strings.Join(lines, "\n")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
