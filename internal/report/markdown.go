package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonesrussell/scout/internal/domain"
)

// RenderMarkdown renders r as a reviewable lead sheet: a summary table, the
// high-priority leads with their drafts, then every other record.
func RenderMarkdown(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Audit report: %s\n\n", r.Industry)
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	if r.Notes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", r.Notes)
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Total | Audited | Failed | Skipped | High priority |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n",
		r.Counts.Total, r.Counts.Audited, r.Counts.Failed, r.Counts.Skipped, r.Counts.HighPriority)

	high, rest := splitPriority(r.Records)

	if len(high) > 0 {
		b.WriteString("\n## High-priority leads\n")
		for _, rec := range high {
			writeLead(&b, rec)
		}
	}

	if len(rest) > 0 {
		b.WriteString("\n## Other targets\n\n")
		b.WriteString("| Domain | Status | Score | Load (s) | SSL | Email | Issues |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, rec := range rest {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				cell(rec.Domain),
				rec.Status,
				scoreCell(rec),
				recordLoadCell(rec),
				yesNo(rec.HasSSL),
				cell(rec.ContactEmail),
				cell(issuesOrError(rec)),
			)
		}
	}

	return b.String()
}

// splitPriority keeps input order within each group and sorts high-priority
// leads by score, highest first.
func splitPriority(records []domain.AuditRecord) (high, rest []domain.AuditRecord) {
	for _, rec := range records {
		if rec.HighPriority() {
			high = append(high, rec)
		} else {
			rest = append(rest, rec)
		}
	}
	sort.SliceStable(high, func(i, j int) bool { return high[i].FinalScore > high[j].FinalScore })
	return high, rest
}

func writeLead(b *strings.Builder, rec domain.AuditRecord) {
	title := rec.CompanyName
	if title == "" {
		title = rec.Domain
	}
	fmt.Fprintf(b, "\n### %s (%d/10)\n\n", title, rec.FinalScore)
	fmt.Fprintf(b, "- URL: %s\n", rec.URL)
	fmt.Fprintf(b, "- Load time: %ss, SSL: %s\n", loadCell(rec.LoadTime), yesNo(rec.HasSSL))
	if rec.ContactEmail != "" {
		fmt.Fprintf(b, "- Contact: %s (tier %d)\n", rec.ContactEmail, rec.ContactTier)
	} else {
		fmt.Fprintf(b, "- Contact: none found (tier %d)\n", rec.ContactTier)
	}
	if len(rec.DetectedIssues) > 0 {
		fmt.Fprintf(b, "- Issues: %s\n", strings.Join(rec.DetectedIssues, ", "))
	}
	if rec.Insight != "" {
		fmt.Fprintf(b, "\n> %s\n", strings.ReplaceAll(rec.Insight, "\n", "\n> "))
	}
	if rec.EmailDraft != "" {
		fmt.Fprintf(b, "\n```text\n%s\n```\n", rec.EmailDraft)
	}
}

func scoreCell(rec domain.AuditRecord) string {
	if rec.Status != domain.StatusOK {
		return "-"
	}
	return fmt.Sprintf("%d", rec.FinalScore)
}

func recordLoadCell(rec domain.AuditRecord) string {
	if rec.Status != domain.StatusOK {
		return "-"
	}
	return loadCell(rec.LoadTime)
}

func loadCell(v float64) string {
	if v < 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func issuesOrError(rec domain.AuditRecord) string {
	if rec.Error != "" {
		return rec.Error
	}
	return strings.Join(rec.DetectedIssues, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
