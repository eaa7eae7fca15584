package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonesrussell/scout/internal/logger"
)

const (
	dirPerm   = 0o755
	filePerm  = 0o644
	stampFmt  = "20060102_150405"
	runIDRune = 8
)

// FileWriter writes reports under <dir>/<slug>/.
type FileWriter struct {
	dir string
	log logger.Logger
}

// NewFileWriter creates a FileWriter rooted at dir.
func NewFileWriter(dir string, log logger.Logger) *FileWriter {
	return &FileWriter{dir: dir, log: log}
}

// Write implements Writer.
func (w *FileWriter) Write(_ context.Context, r Report) (map[string]string, error) {
	slugDir := filepath.Join(w.dir, r.Slug)
	if err := os.MkdirAll(slugDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	base := "audit_" + r.GeneratedAt.UTC().Format(stampFmt)
	if r.RunID != "" {
		base += "_" + shortID(r.RunID)
	}

	jsonPath := filepath.Join(slugDir, base+".json")
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err = os.WriteFile(jsonPath, data, filePerm); err != nil {
		return nil, fmt.Errorf("write json report: %w", err)
	}

	mdPath := filepath.Join(slugDir, base+".md")
	if err = os.WriteFile(mdPath, []byte(RenderMarkdown(r)), filePerm); err != nil {
		return nil, fmt.Errorf("write markdown report: %w", err)
	}

	w.log.Info("Report written",
		logger.String("run_id", r.RunID),
		logger.String("json", jsonPath),
		logger.String("markdown", mdPath),
	)

	return map[string]string{ArtifactJSON: jsonPath, ArtifactMarkdown: mdPath}, nil
}

// Entry is a stored report file.
type Entry struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// List returns the report files under dir, newest name first within each slug.
func List(dir string) ([]Entry, error) {
	slugDirs, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var out []Entry
	for _, sd := range slugDirs {
		if !sd.IsDir() {
			continue
		}
		files, readErr := os.ReadDir(filepath.Join(dir, sd.Name()))
		if readErr != nil {
			return nil, fmt.Errorf("read reports for %s: %w", sd.Name(), readErr)
		}
		for _, f := range files {
			if f.IsDir() || !isReportFile(f.Name()) {
				continue
			}
			info, infoErr := f.Info()
			if infoErr != nil {
				continue
			}
			out = append(out, Entry{Slug: sd.Name(), Name: f.Name(), Type: kindOf(f.Name()), Size: info.Size()})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Slug != out[j].Slug {
			return out[i].Slug < out[j].Slug
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// Path resolves a stored report file, rejecting names that escape dir.
func Path(dir, slug, name string) (string, error) {
	if !validSegment(slug) || !validSegment(name) || !isReportFile(name) {
		return "", fs.ErrNotExist
	}
	return filepath.Join(dir, slug, name), nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func kindOf(name string) string {
	if strings.HasPrefix(name, advisoryPrefix) {
		return TypeAdvisory
	}
	return TypeAudit
}

func isReportFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".json" || ext == ".md"
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > runIDRune {
		return id[:runIDRune]
	}
	return id
}
