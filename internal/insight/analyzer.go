// Package insight asks a generative text service for a short, industry-aware
// observation about a site's hero content.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/logger"
)

const analysisInstructions = `You are an expert UX auditor and conversion rate specialist.
You review the hero section of a business website, provided as text, and give one high-impact insight.

Guidelines:
1. Be specific. Name a concrete friction point such as a buried value proposition, a weak call to action or a jargon-heavy headline.
2. Write as an expert consultant offering a free observation.
3. Keep it under two sentences.
4. Return only the insight text with no preamble.

Use the industry context below to judge what this audience needs to see first.

`

const userPrefix = "Analyze this hero section:\n\n"

// Analyzer produces insights for fetched pages.
type Analyzer struct {
	gen Generator
	cfg Config
	log logger.Logger
}

// NewAnalyzer creates an Analyzer. gen may be nil when no service is
// configured; every Result is then degraded.
func NewAnalyzer(gen Generator, cfg Config, log logger.Logger) *Analyzer {
	return &Analyzer{gen: gen, cfg: cfg.WithDefaults(), log: log}
}

// Analyze returns an insight for html. It never fails: service problems are
// reported as a degraded Result.
func (a *Analyzer) Analyze(ctx context.Context, html string, profile *industry.Profile) Result {
	excerpt := HeroExcerpt(html)
	if excerpt == "" {
		return Degraded(ReasonNoContent, NoContentText)
	}

	if a.gen == nil {
		return Degraded(ReasonNotConfigured, NotConfiguredText)
	}

	text, err := a.gen.Generate(ctx, Request{
		System:      SystemPrompt(profile),
		User:        userPrefix + excerpt,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: *a.cfg.Temperature,
	})
	if err != nil {
		a.log.Warn("Insight generation failed", logger.Error(err))
		reason := ReasonServiceError
		if errors.Is(err, ErrCircuitOpen) {
			reason = ErrCircuitOpen.Error()
		}
		return Degraded(reason, fmt.Sprintf("LLM error: %v", err))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Degraded(ReasonEmptyResponse, "LLM error: empty response")
	}

	return Succeeded(text)
}

// SystemPrompt renders the analysis instructions followed by the industry context.
func SystemPrompt(profile *industry.Profile) string {
	if profile == nil {
		return analysisInstructions
	}
	return analysisInstructions + profile.PromptContext()
}
