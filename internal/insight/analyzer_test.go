package insight_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/insight"
	"github.com/jonesrussell/scout/internal/logger"
)

const heroHTML = `<h1>Family Law in Toronto</h1><p>We are here for you.</p>`

func testProfile() *industry.Profile {
	return &industry.Profile{
		Name:          "Law Firms",
		Slug:          "law_firms",
		AnalysisFocus: "Credibility",
		PainPoints:    []string{"Slow site"},
		TrustSignals:  []string{"Reviews"},
		PriorityIndicators: industry.PriorityIndicators{
			High: []string{"No SSL"},
		},
	}
}

func TestAnalyzer_Success(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{text: "  Your headline buries the consultation offer.\n"}
	a := insight.NewAnalyzer(gen, insight.Config{}, logger.NewNop())

	got := a.Analyze(context.Background(), heroHTML, testProfile())

	assert.Equal(t, insight.Succeeded("Your headline buries the consultation offer."), got)
	require.Equal(t, 1, gen.calls())

	req := gen.requests[0]
	assert.Equal(t, 150, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, "Analyze this hero section:\n\nH1: Family Law in Toronto\nP: We are here for you.", req.User)
	assert.Contains(t, req.System, "INDUSTRY: Law Firms")
	assert.Contains(t, req.System, "HIGH PRIORITY RED FLAGS TO DETECT:\n  - No SSL")
}

func TestAnalyzer_ZeroTemperatureIsSent(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{text: "Deterministic."}
	a := insight.NewAnalyzer(gen, insight.Config{Temperature: insight.Float(0)}, logger.NewNop())

	a.Analyze(context.Background(), heroHTML, testProfile())

	require.Equal(t, 1, gen.calls())
	assert.Zero(t, gen.requests[0].Temperature)
}

func TestConfig_WithDefaultsCopiesTemperature(t *testing.T) {
	t.Parallel()

	temp := 0.2
	cfg := insight.Config{Temperature: &temp}.WithDefaults()
	temp = 0.9

	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-9)
}

func TestAnalyzer_NoContentSkipsService(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{text: "unused"}
	got := insight.NewAnalyzer(gen, insight.Config{}, logger.NewNop()).
		Analyze(context.Background(), `<html><body></body></html>`, testProfile())

	assert.True(t, got.Degraded)
	assert.Equal(t, insight.NoContentText, got.Text)
	assert.Equal(t, insight.ReasonNoContent, got.Reason)
	assert.Zero(t, gen.calls())
}

func TestAnalyzer_NotConfigured(t *testing.T) {
	t.Parallel()

	got := insight.NewAnalyzer(nil, insight.Config{}, logger.NewNop()).
		Analyze(context.Background(), heroHTML, testProfile())

	assert.Equal(t, insight.Degraded(insight.ReasonNotConfigured, insight.NotConfiguredText), got)
}

func TestAnalyzer_ServiceErrorDegrades(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: context.DeadlineExceeded}
	got := insight.NewAnalyzer(gen, insight.Config{}, logger.NewNop()).
		Analyze(context.Background(), heroHTML, testProfile())

	assert.True(t, got.Degraded)
	assert.Equal(t, "LLM error: context deadline exceeded", got.Text)
	assert.Equal(t, insight.ReasonServiceError, got.Reason)
	assert.Equal(t, 1, gen.calls())
}

func TestAnalyzer_EmptyResponseDegrades(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{text: "   "}
	got := insight.NewAnalyzer(gen, insight.Config{}, logger.NewNop()).
		Analyze(context.Background(), heroHTML, testProfile())

	assert.True(t, got.Degraded)
	assert.Equal(t, insight.ReasonEmptyResponse, got.Reason)
}

func TestAnalyzer_CircuitOpenReason(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	breaker := insight.NewBreakerGenerator(gen, 1, 0)
	a := insight.NewAnalyzer(breaker, insight.Config{}, logger.NewNop())

	first := a.Analyze(context.Background(), heroHTML, testProfile())
	second := a.Analyze(context.Background(), heroHTML, testProfile())

	assert.Equal(t, "LLM error: quota exceeded", first.Text)
	assert.Equal(t, "LLM error: circuit open", second.Text)
	assert.Equal(t, insight.ErrCircuitOpen.Error(), second.Reason)
	assert.Equal(t, 1, gen.calls())
}

func TestSystemPrompt_NilProfile(t *testing.T) {
	t.Parallel()

	assert.NotContains(t, insight.SystemPrompt(nil), "INDUSTRY:")
}
