package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/scout/internal/industry"
)

// SourceProfile marks a brief assembled from the profile without a generator.
const SourceProfile = "profile"

// Meta is the header information of an advisory document.
type Meta struct {
	ID          string
	GeneratedAt time.Time
	Source      string
}

// Render wraps body in the advisory header.
func Render(profile *industry.Profile, meta Meta, body string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Advisory: %s\n\n", profile.Name)
	fmt.Fprintf(&b, "- Advisory: `%s`\n", meta.ID)
	fmt.Fprintf(&b, "- Generated: %s\n", meta.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Source: %s\n", meta.Source)
	if notes := strings.TrimSpace(profile.Notes); notes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", notes)
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")

	return b.String()
}

// ProfileBrief lays the profile out under the brief's sections.
func ProfileBrief(profile *industry.Profile) string {
	var b strings.Builder

	b.WriteString("## Market snapshot\n\n")
	fmt.Fprintf(&b, "- Searches: %s\n", joinOrDash(profile.AllKeywords()))
	fmt.Fprintf(&b, "- Locations: %s\n", joinOrDash(profile.AllLocations()))
	fmt.Fprintf(&b, "- Focus: %s\n", profile.AnalysisFocus)

	b.WriteString("\n## What buyers need to see\n\n")
	writeBullets(&b, profile.TrustSignals)

	b.WriteString("\n## Likely website weaknesses\n\n")
	writeBullets(&b, profile.PainPoints)
	if high := profile.Indicators(industry.BucketHigh); len(high) > 0 {
		fmt.Fprintf(&b, "\nRed flags worth a call: %s.\n", strings.Join(high, ", "))
	}

	b.WriteString("\n## Offer positioning\n\n")
	b.WriteString(profile.OfferAngle)
	b.WriteString("\n")
	if len(profile.KPIs) > 0 {
		fmt.Fprintf(&b, "\nTie results to: %s.\n", strings.Join(profile.KPIs, ", "))
	}

	b.WriteString("\n## Outreach plan\n\n")
	b.WriteString(profile.OutreachAngle)
	b.WriteString("\n")

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- none listed\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
