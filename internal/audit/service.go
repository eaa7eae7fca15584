// Package audit resolves an audit request into a profile and a target list
// and runs it through the pipeline.
package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/pipeline"
	"github.com/jonesrussell/scout/internal/targets"
)

// ErrNoTargetSource is returned when a request names neither a file nor inline targets.
var ErrNoTargetSource = errors.New("either a targets file or inline targets is required")

// Request describes one audit.
type Request struct {
	Industry   string   `json:"industry"`
	TargetFile string   `json:"target_file,omitempty"`
	Inline     string   `json:"targets,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	DryRun     bool     `json:"dry_run,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Locations  []string `json:"locations,omitempty"`

	// StoredOnly restricts TargetFile to a file name inside the targets
	// directory. Requests from the network set it.
	StoredOnly bool `json:"-"`
}

// Service runs audit requests.
type Service struct {
	catalog    *industry.Catalog
	orch       *pipeline.Orchestrator
	targetsDir string
	log        logger.Logger
}

// NewService creates a Service. Relative target files are also looked up in
// targetsDir.
func NewService(catalog *industry.Catalog, orch *pipeline.Orchestrator, targetsDir string, log logger.Logger) *Service {
	return &Service{catalog: catalog, orch: orch, targetsDir: targetsDir, log: log}
}

// Run loads the profile and targets for req and audits them. Profile and
// target errors are returned before any target is processed.
func (s *Service) Run(ctx context.Context, req Request, sink pipeline.Sink) (pipeline.Summary, error) {
	profile, err := s.catalog.Load(req.Industry, industry.LoadOptions{
		CustomKeywords:  req.Keywords,
		CustomLocations: req.Locations,
		Notes:           req.Notes,
	})
	if err != nil {
		return pipeline.Summary{}, fmt.Errorf("load industry: %w", err)
	}

	list, err := s.Targets(req)
	if err != nil {
		return pipeline.Summary{}, err
	}

	s.log.Info("Audit requested",
		logger.String("industry", profile.Slug),
		logger.Int("targets", len(list)),
		logger.Bool("dry_run", req.DryRun),
	)

	run := s.orch.NewRun(profile, sink, req.DryRun)
	return s.orch.Audit(ctx, run, list)
}

// Targets resolves the request's target list. Inline targets take precedence
// over a file.
func (s *Service) Targets(req Request) ([]string, error) {
	if strings.TrimSpace(req.Inline) != "" {
		return targets.ParseInline(req.Inline, req.Limit)
	}
	if req.TargetFile == "" {
		return nil, ErrNoTargetSource
	}

	resolve := targets.Resolve
	if req.StoredOnly {
		resolve = func(name, dir string) (string, error) { return targets.ResolveStored(dir, name) }
	}
	path, err := resolve(req.TargetFile, s.targetsDir)
	if err != nil {
		return nil, err
	}
	return targets.ReadFile(path, req.Limit)
}

// Job adapts req to a jobs.Func whose result is the run Summary.
func (s *Service) Job(req Request) jobs.Func {
	return func(ctx context.Context, progress *jobs.Progress) (any, error) {
		return s.Run(ctx, req, progress)
	}
}
