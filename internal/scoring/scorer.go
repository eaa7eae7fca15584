// Package scoring turns fetch signals and contact completeness into a lead
// priority score with industry-specific bumps.
package scoring

import (
	"strconv"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/industry"
)

// Score bounds and deltas.
const (
	BaseScore = 5
	MaxScore  = 10

	verySlowThreshold = 5.0
	slowThreshold     = 3.0

	verySlowDelta = 2
	slowDelta     = 1
	noSSLDelta    = 2
	noEmailDelta  = 1

	highBump   = 3
	mediumBump = 1
)

// Issue texts.
const (
	IssueNoSSL   = "no SSL"
	IssueNoEmail = "no email found"
)

// Result is a scored target.
type Result struct {
	Base   int
	Bump   int
	Final  int
	Issues []string
}

// Scorer computes Results. It caches compiled indicator matchers per profile
// and is safe for concurrent use.
type Scorer struct {
	mu       sync.Mutex
	matchers map[string]*indicatorMatchers
}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{matchers: make(map[string]*indicatorMatchers)}
}

// Score evaluates a fetched and extracted target against profile. The same
// inputs always produce the same Result.
func (s *Scorer) Score(fetch domain.FetchResult, contact domain.ContactInfo, profile *industry.Profile) Result {
	base := BaseScore
	var issues []string

	switch {
	case fetch.LoadTime > verySlowThreshold:
		base += verySlowDelta
		issues = append(issues, "very slow load: "+FormatSeconds(fetch.LoadTime)+"s")
	case fetch.LoadTime > slowThreshold:
		base += slowDelta
		issues = append(issues, "slow load: "+FormatSeconds(fetch.LoadTime)+"s")
	}

	if !fetch.HasSSL {
		base += noSSLDelta
		issues = append(issues, IssueNoSSL)
	}

	if contact.Email == "" {
		base += noEmailDelta
		issues = append(issues, IssueNoEmail)
	}

	m := s.matchersFor(profile)
	bump := 0
	for _, issue := range issues {
		bump += m.bump(issue)
	}

	return Result{
		Base:   base,
		Bump:   bump,
		Final:  min(base+bump, MaxScore),
		Issues: issues,
	}
}

// IssueBump returns the industry bump a single issue earns under profile.
func (s *Scorer) IssueBump(issue string, profile *industry.Profile) int {
	return s.matchersFor(profile).bump(issue)
}

func (s *Scorer) matchersFor(profile *industry.Profile) *indicatorMatchers {
	if profile == nil {
		return &indicatorMatchers{}
	}

	key := profileKey(profile)

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.matchers[key]; ok {
		return m
	}

	m := &indicatorMatchers{
		high:   newWordMatcher(profile.Indicators(industry.BucketHigh)),
		medium: newWordMatcher(profile.Indicators(industry.BucketMedium)),
	}
	s.matchers[key] = m
	return m
}

func profileKey(p *industry.Profile) string {
	return p.Slug + "\x00" +
		strings.Join(p.PriorityIndicators.High, "\x1f") + "\x00" +
		strings.Join(p.PriorityIndicators.Medium, "\x1f")
}

type indicatorMatchers struct {
	high   *ahocorasick.Matcher
	medium *ahocorasick.Matcher
}

// bump awards the high bonus when any word of a high indicator occurs in the
// lowercased issue, otherwise the medium bonus for a medium word.
func (m *indicatorMatchers) bump(issue string) int {
	text := []byte(strings.ToLower(issue))
	switch {
	case matches(m.high, text):
		return highBump
	case matches(m.medium, text):
		return mediumBump
	default:
		return 0
	}
}

func newWordMatcher(indicators []string) *ahocorasick.Matcher {
	seen := make(map[string]struct{})
	var words []string
	for _, indicator := range indicators {
		for _, w := range strings.Fields(strings.ToLower(indicator)) {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}
	return ahocorasick.NewStringMatcher(words)
}

func matches(m *ahocorasick.Matcher, text []byte) bool {
	return m != nil && len(m.Match(text)) > 0
}

// FormatSeconds renders a load time the way issue texts quote it: shortest
// decimal form, always with a fractional part.
func FormatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
