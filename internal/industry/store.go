package industry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// NormalizeSlug lowercases s and turns spaces into underscores. It returns
// ErrInvalidSlug when the result is not a safe file name.
func NormalizeSlug(s string) (string, error) {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	if !slugPattern.MatchString(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, s)
	}
	return slug, nil
}

// Raw returns the profile document for slug as stored.
func (c *Catalog) Raw(slug string) ([]byte, error) {
	path, err := c.locate(slug)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read industry %q: %w", slug, err)
	}
	return data, nil
}

// Create validates data and stores it as a new profile for slug.
func (c *Catalog) Create(slug string, data []byte) (*Profile, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	profile, err := validateDocument(slug, data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, locErr := c.locate(slug); locErr == nil {
		return nil, fmt.Errorf("%w: %q", ErrExists, slug)
	}
	if err = os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create industries dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(c.dir, slug+profileExtensions[0]), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %q", ErrExists, slug)
		}
		return nil, fmt.Errorf("create industry %q: %w", slug, err)
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write industry %q: %w", slug, err)
	}
	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("write industry %q: %w", slug, err)
	}
	return profile, nil
}

// Update validates data and replaces the stored profile for slug.
func (c *Catalog) Update(slug string, data []byte) (*Profile, error) {
	profile, err := validateDocument(slug, data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := c.locate(slug)
	if err != nil {
		return nil, err
	}
	if err = writeReplace(path, data); err != nil {
		return nil, fmt.Errorf("write industry %q: %w", slug, err)
	}
	return profile, nil
}

// Delete removes the stored profile for slug.
func (c *Catalog) Delete(slug string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := c.locate(slug)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil {
		return fmt.Errorf("delete industry %q: %w", slug, err)
	}
	return nil
}

// validateDocument parses data and checks that its slug matches the one it
// is stored under.
func validateDocument(slug string, data []byte) (*Profile, error) {
	profile, err := Parse(slug, data)
	if err != nil {
		return nil, err
	}
	if profile.Slug != slug {
		return nil, fmt.Errorf("%w: document has %q, stored as %q", ErrSlugMismatch, profile.Slug, slug)
	}
	return profile, nil
}

// writeReplace writes data next to path and renames it into place.
func writeReplace(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".industry-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
