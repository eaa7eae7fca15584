package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonesrussell/scout/internal/logger"
)

// Report kinds listed by List.
const (
	TypeAudit    = "audit"
	TypeAdvisory = "advisory"
)

const advisoryPrefix = "advisory_"

// Advisory is a pre-flight market brief for one industry.
type Advisory struct {
	ID          string
	Slug        string
	GeneratedAt time.Time
	Markdown    string
}

// AdvisoryWriter persists an Advisory and returns the location of each
// artifact keyed by artifact name.
type AdvisoryWriter interface {
	WriteAdvisory(ctx context.Context, a Advisory) (map[string]string, error)
}

// Store persists audit reports and advisories.
type Store interface {
	Writer
	AdvisoryWriter
}

// WriteAdvisory implements AdvisoryWriter. Advisories are stored as a single
// Markdown file next to the audit reports for the same slug.
func (w *FileWriter) WriteAdvisory(_ context.Context, a Advisory) (map[string]string, error) {
	slugDir := filepath.Join(w.dir, a.Slug)
	if err := os.MkdirAll(slugDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	name := advisoryPrefix + a.GeneratedAt.UTC().Format(stampFmt)
	if a.ID != "" {
		name += "_" + shortID(a.ID)
	}
	mdPath := filepath.Join(slugDir, name+".md")

	if err := os.WriteFile(mdPath, []byte(a.Markdown), filePerm); err != nil {
		return nil, fmt.Errorf("write advisory: %w", err)
	}

	w.log.Info("Advisory written",
		logger.String("id", a.ID),
		logger.String("markdown", mdPath),
	)

	return map[string]string{ArtifactMarkdown: mdPath}, nil
}
