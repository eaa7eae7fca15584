// Package pipeline sequences the audit stages for every target of a run and
// aggregates the results into an ordered report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/scout/internal/contact"
	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/fetcher"
	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/insight"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/metrics"
	"github.com/jonesrussell/scout/internal/outreach"
	"github.com/jonesrussell/scout/internal/report"
	"github.com/jonesrussell/scout/internal/scoring"
)

const insightPreviewRunes = 120

// Orchestrator builds runs and drives targets through the stage machine.
// It holds only read-only collaborators and may serve concurrent runs.
type Orchestrator struct {
	cfg        Config
	fetchCfg   fetcher.Config
	insightCfg insight.Config
	fetchOpts  []fetcher.Option

	gen       insight.Generator
	extractor *contact.Extractor
	scorer    *scoring.Scorer
	composer  Composer
	writer    report.Writer
	metrics   *metrics.Metrics
	log       logger.Logger
	sleep     func(ctx context.Context, d time.Duration)
}

// Composer drafts the outreach email for an audited target.
// *outreach.Composer implements it.
type Composer interface {
	Compose(in outreach.Input) (outreach.Email, error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithGenerator sets the generative text service. Without one every insight
// is degraded.
func WithGenerator(gen insight.Generator) Option {
	return func(o *Orchestrator) { o.gen = gen }
}

// WithWriter sets the report writer used by Audit.
func WithWriter(w report.Writer) Option {
	return func(o *Orchestrator) { o.writer = w }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithFetcherConfig sets the configuration of each run's session.
func WithFetcherConfig(cfg fetcher.Config, opts ...fetcher.Option) Option {
	return func(o *Orchestrator) {
		o.fetchCfg = cfg
		o.fetchOpts = opts
	}
}

// WithInsightConfig sets prompt limits and breaker thresholds.
func WithInsightConfig(cfg insight.Config) Option {
	return func(o *Orchestrator) { o.insightCfg = cfg }
}

// WithComposer replaces the default outreach composer.
func WithComposer(c Composer) Option {
	return func(o *Orchestrator) { o.composer = c }
}

// WithSleep replaces the politeness delay implementation.
func WithSleep(fn func(ctx context.Context, d time.Duration)) Option {
	return func(o *Orchestrator) { o.sleep = fn }
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(cfg Config, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:       cfg.WithDefaults(),
		extractor: contact.NewExtractor(log),
		scorer:    scoring.NewScorer(),
		composer:  outreach.NewComposer(outreach.Config{}),
		log:       log,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.insightCfg = o.insightCfg.WithDefaults()
	return o
}

// NewRun prepares a run for profile with its own session and analyzer.
func (o *Orchestrator) NewRun(profile *industry.Profile, sink Sink, dryRun bool) *Run {
	id := uuid.NewString()
	log := o.log.With(logger.String("run_id", id))

	var gen insight.Generator
	if o.gen != nil {
		gen = insight.NewBreakerGenerator(o.gen, o.insightCfg.BreakerFailures, o.insightCfg.BreakerCooldown,
			insight.WithStateChange(func(from, to string) {
				log.Warn("Insight breaker state changed", logger.String("from", from), logger.String("to", to))
			}),
		)
	}

	return &Run{
		ID:        id,
		Profile:   profile,
		Session:   fetcher.NewSession(o.fetchCfg, log, o.fetchOpts...),
		Analyzer:  insight.NewAnalyzer(gen, o.insightCfg, log),
		Sink:      sink,
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}
}

// Run audits targets in order and returns one record per target.
func (o *Orchestrator) Run(ctx context.Context, run *Run, targets []string) []domain.AuditRecord {
	records := make([]domain.AuditRecord, 0, len(targets))

	run.logf("[>] Starting audit: %d targets, industry: %s", len(targets), run.Profile.Name)
	if run.DryRun {
		run.logf("[DRY RUN] Skipping all HTTP and LLM calls.")
	}

	for i, target := range targets {
		if i > 0 && !run.DryRun {
			o.pause(ctx)
		}
		rec := o.auditTarget(ctx, run, target, i+1, len(targets))
		o.metrics.ObserveTarget(run.Profile.Slug, string(rec.Status))
		records = append(records, rec)
	}

	return records
}

// Audit runs targets, writes the report for live runs and closes the run.
// A cancelled ctx produces no report.
func (o *Orchestrator) Audit(ctx context.Context, run *Run, targets []string) (Summary, error) {
	defer run.Close()

	records := o.Run(ctx, run, targets)

	if err := ctx.Err(); err != nil {
		return Summarize(run, records, nil), fmt.Errorf("audit cancelled: %w", err)
	}

	if run.DryRun {
		run.logf("[DRY RUN] %d targets would be audited.", len(records))
		return Summarize(run, records, nil), nil
	}

	var (
		paths     map[string]string
		reportErr error
	)
	if o.writer != nil && len(records) > 0 {
		paths, reportErr = o.writer.Write(ctx, report.Report{
			RunID:       run.ID,
			Industry:    run.Profile.Name,
			Slug:        run.Profile.Slug,
			Notes:       run.Profile.Notes,
			GeneratedAt: time.Now(),
			Counts:      report.Count(records),
			Records:     records,
		})
		if reportErr != nil && len(paths) == 0 {
			return Summarize(run, records, nil), fmt.Errorf("write report: %w", reportErr)
		}
	}

	summary := Summarize(run, records, paths)
	if reportErr != nil {
		o.log.Warn("Report partially written", logger.String("run_id", run.ID), logger.Error(reportErr))
		summary.ReportError = reportErr.Error()
	}

	run.logf("[✓] Audit complete: %d audited, %d high priority", summary.Audited, summary.HighPriority)
	for _, name := range []string{report.ArtifactMarkdown, report.ArtifactJSON} {
		if p, ok := paths[name]; ok {
			run.logf("    Report (%s): %s", name, p)
		}
	}

	return summary, nil
}

func (o *Orchestrator) auditTarget(ctx context.Context, run *Run, target string, pos, total int) domain.AuditRecord {
	url := fetcher.NormalizeURL(target)
	rec := domain.AuditRecord{
		URL:          url,
		Domain:       fetcher.DomainOf(url),
		Industry:     run.Profile.Name,
		IndustrySlug: run.Profile.Slug,
		Status:       domain.StatusPending,
	}
	log := o.log.With(logger.String("run_id", run.ID), logger.String("domain", rec.Domain))
	tr := newTracker()

	run.logf("[%d/%d] %s", pos, total, rec.Domain)

	if run.DryRun {
		tr.mustAdvance(StageSkipped)
		rec.Status = domain.StatusSkipped
		rec.Insight = insight.DryRunText
		return rec
	}

	tr.mustAdvance(StageFetching)
	var fetched domain.FetchResult
	o.timeStage(log, StageFetching, func() {
		fetched = run.Session.Fetch(ctx, url)
	})

	if !fetched.Valid {
		tr.mustAdvance(StageFailed)
		rec.Status = domain.StatusFailed
		rec.Error = fetched.Err
		if rec.Error == "" {
			rec.StatusCode = fetched.StatusCode
			rec.Error = fmt.Sprintf("HTTP %d", fetched.StatusCode)
		}
		run.logf("    [x] Unreachable: %s", rec.Error)
		log.Info("Target failed", logger.String("error", rec.Error))
		return rec
	}

	rec.StatusCode = fetched.StatusCode
	rec.LoadTime = fetched.LoadTime
	rec.HasSSL = fetched.HasSSL
	run.logf("    [+] Online (%ss) %s", scoring.FormatSeconds(rec.LoadTime), sslLabel(rec.HasSSL))

	tr.mustAdvance(StageExtracting)
	var info domain.ContactInfo
	o.timeStage(log, StageExtracting, func() {
		info = o.extractor.Extract(ctx, url, fetched.HTML, run.Session)
	})
	rec.CompanyName = info.CompanyName
	rec.FirstName = info.FirstName
	rec.ContactEmail = info.Email
	rec.ContactTier = info.Tier()
	rec.ContactNotes = info.Notes
	company := info.CompanyName
	if company == "" {
		company = "Unknown Co."
	}
	run.logf("    [~] Contact Tier %d | %s", rec.ContactTier, company)

	tr.mustAdvance(StageScoring)
	var score scoring.Result
	o.timeStage(log, StageScoring, func() {
		score = o.scorer.Score(fetched, info, run.Profile)
	})
	rec.BaseScore = score.Base
	rec.DetectedIssues = score.Issues
	rec.IndustryBump = score.Bump
	rec.FinalScore = score.Final

	tr.mustAdvance(StageAnalyzing)
	run.logf("    [~] Running industry-aware analysis...")
	var result insight.Result
	o.timeStage(log, StageAnalyzing, func() {
		result = run.Analyzer.Analyze(ctx, fetched.HTML, run.Profile)
	})
	rec.Insight = result.Text
	rec.InsightDegraded = result.Degraded
	if result.Degraded {
		o.metrics.ObserveDegradedInsight(result.Reason)
	}
	run.logf("    [i] %s", preview(result.Text, insightPreviewRunes))

	tr.mustAdvance(StageComposing)
	o.timeStage(log, StageComposing, func() {
		email, err := o.composer.Compose(outreach.Input{
			Score:         rec.FinalScore,
			FirstName:     rec.FirstName,
			CompanyName:   rec.CompanyName,
			Domain:        rec.Domain,
			SpecificIssue: outreach.SpecificIssue(rec.DetectedIssues),
			Insight:       rec.Insight,
			LoadTime:      rec.LoadTime,
		})
		// A draft failure does not fail the target: the audit data stands
		// and the record carries the error with no draft.
		if err != nil {
			log.Error("Compose failed", logger.Error(err))
			rec.Error = "draft: " + err.Error()
			run.logf("    [!] Draft unavailable: %s", err)
			return
		}
		rec.EmailDraft = email.String()
	})

	tr.mustAdvance(StageOK)
	rec.Status = domain.StatusOK
	run.logf("    [+] Score: %d/10 | Tier: %d | SSL: %t", rec.FinalScore, rec.ContactTier, rec.HasSSL)
	log.Info("Target audited",
		logger.Int("final_score", rec.FinalScore),
		logger.Int("tier", int(rec.ContactTier)),
		logger.Strings("issues", rec.DetectedIssues),
		logger.Bool("insight_degraded", rec.InsightDegraded),
	)

	return rec
}

func (o *Orchestrator) timeStage(log logger.Logger, stage Stage, fn func()) {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	o.metrics.ObserveStage(string(stage), elapsed)
	log.Debug("Stage finished", logger.String("stage", string(stage)), logger.Duration("elapsed", elapsed))
}

func (o *Orchestrator) pause(ctx context.Context) {
	if o.cfg.PolitenessDelay <= 0 {
		return
	}
	o.sleep(ctx, o.cfg.PolitenessDelay)
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func sslLabel(ok bool) string {
	if ok {
		return "SSL"
	}
	return "no SSL"
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
