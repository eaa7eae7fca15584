package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
)

const (
	robotsTxtPath      = "/robots.txt"
	maxRobotsBodyBytes = 512 * 1024
)

// RobotsChecker answers robots.txt questions for the hosts of one run.
// Rules are fetched once per host and kept for the lifetime of the checker.
type RobotsChecker struct {
	httpClient *http.Client
	userAgent  string

	mu    sync.Mutex
	rules map[string]*robotstxt.RobotsData // nil entry means allow all
}

// NewRobotsChecker creates a RobotsChecker that fetches with httpClient.
func NewRobotsChecker(httpClient *http.Client, userAgent string) *RobotsChecker {
	return &RobotsChecker{
		httpClient: httpClient,
		userAgent:  userAgent,
		rules:      make(map[string]*robotstxt.RobotsData),
	}
}

// IsAllowed reports whether rawURL may be fetched. Missing, unreachable or
// unparsable robots.txt files allow everything.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("robots: parse url: %w", err)
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return false, fmt.Errorf("robots: empty host in url %q", rawURL)
	}

	data := r.rulesFor(ctx, parsed.Scheme, host)
	if data == nil {
		return true, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, r.userAgent), nil
}

func (r *RobotsChecker) rulesFor(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	r.mu.Lock()
	data, ok := r.rules[host]
	r.mu.Unlock()
	if ok {
		return data
	}

	data = r.fetch(ctx, scheme, host)

	r.mu.Lock()
	r.rules[host] = data
	r.mu.Unlock()

	return data
}

func (r *RobotsChecker) fetch(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	if scheme == "" {
		scheme = "https"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+"://"+host+robotsTxtPath, http.NoBody)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return data
}
