// Package advisor writes a pre-flight market brief for an industry before
// any of its sites are audited.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/insight"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/pipeline"
	"github.com/jonesrussell/scout/internal/report"
)

// briefMaxTokens bounds the brief; the insight token limit is sized for two
// sentences.
const briefMaxTokens = 2000

const briefInstructions = `You are a senior digital strategist preparing an agency to prospect an industry.
Write a pre-flight market brief in Markdown using exactly these sections, in order:

## Market snapshot
## What buyers need to see
## Likely website weaknesses
## Offer positioning
## Outreach plan

Be concrete and practical. Do not invent statistics. Return only the Markdown sections with no preamble.`

// Request describes one advisory.
type Request struct {
	Industry string `json:"industry"`
	Notes    string `json:"notes,omitempty"`
}

// Result is a saved advisory. Path is relative to the reports directory.
type Result struct {
	Markdown string `json:"markdown"`
	Path     string `json:"path"`
	Degraded bool   `json:"degraded,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Service generates and stores advisories.
type Service struct {
	catalog *industry.Catalog
	writer  report.AdvisoryWriter
	gen     insight.Generator
	cfg     insight.Config
	log     logger.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator sets the text generator. Without one every brief is built
// from the profile alone.
func WithGenerator(g insight.Generator) Option {
	return func(s *Service) { s.gen = g }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(catalog *industry.Catalog, writer report.AdvisoryWriter, cfg insight.Config, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		writer:  writer,
		cfg:     cfg.WithDefaults(),
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads the profile for req, writes the brief and stores it. A failed
// generation degrades to a brief built from the profile; a failed local
// write is an error.
func (s *Service) Run(ctx context.Context, req Request, sink pipeline.Sink) (Result, error) {
	profile, err := s.catalog.Load(req.Industry, industry.LoadOptions{Notes: req.Notes})
	if err != nil {
		return Result{}, fmt.Errorf("load industry: %w", err)
	}

	sink.Log(fmt.Sprintf("[>] Generating advisory for: %s...", profile.Name))

	body, source, reason := s.brief(ctx, profile)
	if reason != "" {
		sink.Log(fmt.Sprintf("[!] Using profile brief: %s", reason))
	}

	id := uuid.NewString()
	generated := s.now().UTC()
	markdown := Render(profile, Meta{ID: id, GeneratedAt: generated, Source: source}, body)

	paths, err := s.writer.WriteAdvisory(ctx, report.Advisory{
		ID:          id,
		Slug:        profile.Slug,
		GeneratedAt: generated,
		Markdown:    markdown,
	})
	local := paths[report.ArtifactMarkdown]
	if local == "" {
		if err == nil {
			err = errors.New("writer returned no markdown artifact")
		}
		return Result{}, fmt.Errorf("save advisory: %w", err)
	}
	if err != nil {
		s.log.Warn("Advisory mirror failed", logger.String("path", local), logger.Error(err))
	}

	name := filepath.Base(local)
	sink.Log(fmt.Sprintf("[✓] Advisory saved → %s", name))

	s.log.Info("Advisory generated",
		logger.String("industry", profile.Slug),
		logger.String("source", source),
		logger.Bool("degraded", reason != ""),
	)

	return Result{
		Markdown: markdown,
		Path:     profile.Slug + "/" + name,
		Degraded: reason != "",
		Reason:   reason,
	}, nil
}

// Job adapts req to a jobs.Func whose result is the Result.
func (s *Service) Job(req Request) jobs.Func {
	return func(ctx context.Context, progress *jobs.Progress) (any, error) {
		return s.Run(ctx, req, progress)
	}
}

// brief returns the body sections, the source that wrote them and, when the
// generator was not used, the reason.
func (s *Service) brief(ctx context.Context, profile *industry.Profile) (body, source, reason string) {
	if s.gen == nil {
		return ProfileBrief(profile), SourceProfile, insight.NotConfiguredText
	}

	text, err := s.gen.Generate(ctx, insight.Request{
		System:      briefInstructions,
		User:        UserPrompt(profile),
		MaxTokens:   briefMaxTokens,
		Temperature: *s.cfg.Temperature,
	})
	if err != nil {
		s.log.Warn("Advisory generation failed", logger.Error(err))
		return ProfileBrief(profile), SourceProfile, fmt.Sprintf("LLM error: %v", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ProfileBrief(profile), SourceProfile, "LLM error: empty response"
	}
	return text, s.cfg.Model, ""
}

// UserPrompt renders the full profile, including run notes, for the generator.
func UserPrompt(profile *industry.Profile) string {
	var b strings.Builder

	b.WriteString(profile.PromptContext())
	b.WriteString("\n\nSEARCH KEYWORDS: ")
	b.WriteString(strings.Join(profile.AllKeywords(), ", "))
	b.WriteString("\nLOCATIONS: ")
	b.WriteString(strings.Join(profile.AllLocations(), ", "))
	b.WriteString("\nKPIS THE CLIENT CARES ABOUT: ")
	b.WriteString(strings.Join(profile.KPIs, ", "))
	fmt.Fprintf(&b, "\nOFFER ANGLE: %s", profile.OfferAngle)
	fmt.Fprintf(&b, "\nOUTREACH ANGLE: %s", profile.OutreachAngle)
	if notes := strings.TrimSpace(profile.Notes); notes != "" {
		fmt.Fprintf(&b, "\n\nADDITIONAL CONTEXT FROM THE OPERATOR:\n%s", notes)
	}

	return b.String()
}
