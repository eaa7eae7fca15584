package industry

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog errors.
var (
	ErrNotFound     = errors.New("industry not found")
	ErrExists       = errors.New("industry already exists")
	ErrInvalidSlug  = errors.New("invalid industry slug")
	ErrMalformed    = errors.New("malformed industry profile")
	ErrSlugMismatch = errors.New("profile slug does not match")
)

// ValidationError lists every required field a profile is missing.
type ValidationError struct {
	Slug    string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("industry %q: missing required fields: %s", e.Slug, strings.Join(e.Missing, ", "))
}
