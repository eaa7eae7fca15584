package insight

// Fixed insight texts.
const (
	NoContentText     = "Could not extract content for analysis."
	NotConfiguredText = "LLM analysis skipped (no API key configured)."
	DryRunText        = "[DRY RUN] No analysis performed."
)

// Reasons a Result is degraded.
const (
	ReasonNoContent     = "no extractable content"
	ReasonNotConfigured = "generator not configured"
	ReasonServiceError  = "generator error"
	ReasonEmptyResponse = "empty response"
)

// Result is either a generated insight or a degraded placeholder. Callers
// branch on Degraded; Text is always safe to show.
type Result struct {
	Text     string
	Degraded bool
	Reason   string
}

// Succeeded wraps generated insight text.
func Succeeded(text string) Result {
	return Result{Text: text}
}

// Degraded builds a placeholder result with the reason it was produced.
func Degraded(reason, text string) Result {
	return Result{Text: text, Degraded: true, Reason: reason}
}
