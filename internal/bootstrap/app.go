// Package bootstrap wires configuration into the running components shared
// by the CLI and the HTTP server.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jonesrussell/scout/internal/advisor"
	"github.com/jonesrussell/scout/internal/api"
	"github.com/jonesrussell/scout/internal/audit"
	"github.com/jonesrussell/scout/internal/config"
	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/insight"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/metrics"
	"github.com/jonesrussell/scout/internal/outreach"
	"github.com/jonesrussell/scout/internal/pipeline"
	"github.com/jonesrussell/scout/internal/report"
)

// Version is reported by the health endpoint and the version command.
var Version = "dev"

// App holds the wired components.
type App struct {
	Config   *config.Config
	Log      logger.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Catalog  *industry.Catalog
	Runner   *jobs.Runner
	Audits   *audit.Service
	Advisor  *advisor.Service
}

// New wires an App from cfg.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	writer, err := newReportWriter(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithWriter(writer),
		pipeline.WithMetrics(m),
		pipeline.WithFetcherConfig(cfg.Fetcher),
		pipeline.WithInsightConfig(cfg.Insight),
		pipeline.WithComposer(outreach.NewComposer(cfg.Outreach)),
	}
	var advisorOpts []advisor.Option
	if cfg.Insight.APIKey != "" {
		gen := insight.NewAnthropicGenerator(cfg.Insight)
		opts = append(opts, pipeline.WithGenerator(gen))
		advisorOpts = append(advisorOpts, advisor.WithGenerator(gen))
		log.Info("Insight generator enabled", logger.String("model", cfg.Insight.Model))
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, insights and advisories will be degraded")
	}

	catalog := industry.NewCatalog(cfg.Paths.Industries)
	orch := pipeline.NewOrchestrator(cfg.Pipeline, log, opts...)

	return &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Metrics:  m,
		Catalog:  catalog,
		Runner:   jobs.NewRunner(cfg.Jobs, log, m),
		Audits:   audit.NewService(catalog, orch, cfg.Paths.Targets, log),
		Advisor:  advisor.NewService(catalog, writer, cfg.Insight, log, advisorOpts...),
	}, nil
}

// Server builds the HTTP server for the App.
func (a *App) Server() *api.Server {
	h := api.NewHandler(api.HandlerConfig{
		Catalog:    a.Catalog,
		Audits:     a.Audits,
		Advisor:    a.Advisor,
		Runner:     a.Runner,
		ReportsDir: a.Config.Paths.Reports,
		TargetsDir: a.Config.Paths.Targets,
		Version:    Version,
	})

	srv := a.Config.Server
	return api.NewServer(api.NewRouter(h, a.Metrics, a.Registry, a.Log), api.ServerOptions{
		Address:         srv.Address(),
		ReadTimeout:     srv.ReadTimeout,
		WriteTimeout:    srv.WriteTimeout,
		IdleTimeout:     srv.IdleTimeout,
		ShutdownTimeout: srv.ShutdownTimeout,
	}, a.Log)
}

func newReportWriter(ctx context.Context, cfg *config.Config, log logger.Logger) (report.Store, error) {
	var w report.Store = report.NewFileWriter(cfg.Paths.Reports, log)
	if !cfg.S3.Enabled {
		return w, nil
	}

	client, err := report.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("s3: %w", err)
	}
	log.Info("Report mirror enabled",
		logger.String("bucket", cfg.S3.Bucket),
		logger.String("prefix", cfg.S3.Prefix),
	)
	return report.NewS3Mirror(w, client, cfg.S3, log), nil
}
