package industry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var profileExtensions = []string{".yaml", ".yml"}

// requiredFields are the top-level keys every profile file must define.
var requiredFields = []string{
	"name",
	"slug",
	"search_keywords",
	"locations",
	"pain_points",
	"kpis",
	"trust_signals",
	"offer_angle",
	"analysis_focus",
	"outreach_angle",
	"priority_indicators",
}

// LoadOptions carries caller-supplied additions for a single run.
type LoadOptions struct {
	CustomKeywords  []string
	CustomLocations []string
	Notes           string
}

// Summary describes a profile for listings. Err is set when the file exists
// but does not load.
type Summary struct {
	Slug       string `json:"slug"`
	Name       string `json:"name,omitempty"`
	Keywords   int    `json:"keywords"`
	Locations  int    `json:"locations"`
	PainPoints int    `json:"pain_points"`
	Err        string `json:"error,omitempty"`
}

// Catalog reads and writes profiles in a directory of YAML files named
// <slug>.yaml.
type Catalog struct {
	dir string
	mu  sync.Mutex // serializes writes
}

// NewCatalog creates a Catalog rooted at dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns the sorted slugs of every profile file. A missing directory
// yields an empty list.
func (c *Catalog) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read industries dir: %w", err)
	}

	seen := make(map[string]struct{})
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(profileExtensions, ext) {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ext)
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}

	sort.Strings(slugs)
	return slugs, nil
}

// Load reads and validates the profile for slug and applies opts.
func (c *Catalog) Load(slug string, opts LoadOptions) (*Profile, error) {
	path, err := c.locate(slug)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read industry %q: %w", slug, err)
	}

	profile, err := Parse(slug, data)
	if err != nil {
		return nil, err
	}

	profile.CustomKeywords = opts.CustomKeywords
	profile.CustomLocations = opts.CustomLocations
	profile.Notes = opts.Notes

	return profile, nil
}

// Summaries loads every profile and reports its counts or load error.
func (c *Catalog) Summaries() ([]Summary, error) {
	slugs, err := c.List()
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(slugs))
	for _, slug := range slugs {
		s := Summary{Slug: slug}
		p, loadErr := c.Load(slug, LoadOptions{})
		if loadErr != nil {
			s.Err = loadErr.Error()
		} else {
			s.Name = p.Name
			s.Keywords = len(p.SearchKeywords)
			s.Locations = len(p.Locations)
			s.PainPoints = len(p.PainPoints)
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Catalog) locate(slug string) (string, error) {
	if slug == "" || strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return "", fmt.Errorf("%w: %q", ErrNotFound, slug)
	}

	for _, ext := range profileExtensions {
		path := filepath.Join(c.dir, slug+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	available, _ := c.List()
	return "", fmt.Errorf("%w: %q (available: %s)", ErrNotFound, slug, strings.Join(available, ", "))
}

// Parse decodes a profile document and rejects it when any required field
// is absent or null.
func Parse(slug string, data []byte) (*Profile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformed, slug, err)
	}

	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, &ValidationError{Slug: slug, Missing: requiredFields}
	}
	root := doc.Content[0]

	if missing := missingFields(root); len(missing) > 0 {
		return nil, &ValidationError{Slug: slug, Missing: missing}
	}

	var profile Profile
	if err := root.Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformed, slug, err)
	}

	return &profile, nil
}

func missingFields(mapping *yaml.Node) []string {
	present := make(map[string]bool, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		present[key.Value] = value.Tag != "!!null"
	}

	var missing []string
	for _, field := range requiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}
