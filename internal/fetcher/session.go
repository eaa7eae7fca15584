// Package fetcher owns the per-run HTTP session: the timed homepage fetch,
// the secondary-page requests used by contact extraction and optional
// robots.txt checks.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/logger"
)

// Transport defaults for a session.
const (
	maxIdleConns          = 20
	maxIdleConnsPerHost   = 4
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 1 * time.Second
)

// ErrDisallowed is reported when robots.txt forbids fetching a target.
var ErrDisallowed = errors.New("blocked by robots.txt")

// Session is the HTTP state owned by a single audit run. It must not be
// shared between concurrent runs.
type Session struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	robots  *RobotsChecker
	log     logger.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithTransport replaces the session transport. Tests use it to trust
// httptest TLS servers.
func WithTransport(rt http.RoundTripper) Option {
	return func(s *Session) {
		s.client.Transport = rt
	}
}

// NewSession builds a Session with its own transport, cookie jar and
// secondary-page limiter.
func NewSession(cfg Config, log logger.Logger, opts ...Option) *Session {
	cfg = cfg.WithDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = maxIdleConns
	transport.MaxIdleConnsPerHost = maxIdleConnsPerHost
	transport.IdleConnTimeout = idleConnTimeout
	transport.TLSHandshakeTimeout = tlsHandshakeTimeout
	transport.ExpectContinueTimeout = expectContinueTimeout

	// cookiejar.New only fails on a nil options value.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	limit := rate.Inf
	if cfg.SecondaryRPS > 0 {
		limit = rate.Limit(cfg.SecondaryRPS)
	}

	s := &Session{
		cfg: cfg,
		client: &http.Client{
			Transport:     transport,
			Jar:           jar,
			CheckRedirect: RedirectPolicy(cfg.MaxRedirects),
		},
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}

	for _, opt := range opts {
		opt(s)
	}

	if cfg.RespectRobots {
		s.robots = NewRobotsChecker(s.client, cfg.UserAgent)
	}

	return s
}

// Close releases idle connections held by the session.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// Fetch performs the timed homepage GET for target. It never returns an
// error: transport failures are reported through FetchResult.Err with
// Valid=false and LoadTime set to domain.LoadTimeUnavailable.
func (s *Session) Fetch(ctx context.Context, target string) domain.FetchResult {
	rawURL := NormalizeURL(target)

	// The robots lookup shares the fetch deadline.
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if s.robots != nil {
		allowed, err := s.robots.IsAllowed(ctx, rawURL)
		if err != nil {
			return failedFetch(err)
		}
		if !allowed {
			return failedFetch(ErrDisallowed)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return failedFetch(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req) //nolint:gosec // URL comes from the caller's target list
	if err != nil {
		s.log.Debug("Fetch failed", logger.String("url", rawURL), logger.Error(err))
		return failedFetch(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes))
	elapsed := roundSeconds(time.Since(start))
	if err != nil {
		return failedFetch(fmt.Errorf("read body: %w", err))
	}

	finalURL := resp.Request.URL

	return domain.FetchResult{
		StatusCode: resp.StatusCode,
		LoadTime:   elapsed,
		Valid:      resp.StatusCode == http.StatusOK,
		HTML:       string(body),
		FinalURL:   finalURL.String(),
		HasSSL:     finalURL.Scheme == "https",
	}
}

// Get fetches a secondary page with the shorter page timeout. Requests are
// paced by the session limiter.
func (s *Session) Get(ctx context.Context, rawURL string) (int, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, "", fmt.Errorf("wait for limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req) //nolint:gosec // URL is derived from the target
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read body: %w", err)
	}

	return resp.StatusCode, string(body), nil
}

func failedFetch(err error) domain.FetchResult {
	return domain.FetchResult{
		LoadTime: domain.LoadTimeUnavailable,
		Err:      err.Error(),
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
