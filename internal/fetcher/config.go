package fetcher

import "time"

// Default configuration values.
const (
	DefaultUserAgent    = "Mozilla/5.0 (compatible; NorthCloud-Scout/1.0)"
	defaultTimeout      = 10 * time.Second
	defaultPageTimeout  = 8 * time.Second
	defaultMaxRedirects = 10
	defaultMaxBodyBytes = 10 * 1024 * 1024
	defaultSecondaryRPS = 4.0
)

// Config holds per-run HTTP session settings.
type Config struct {
	UserAgent     string        `env:"FETCHER_USER_AGENT"     yaml:"user_agent"`
	Timeout       time.Duration `env:"FETCHER_TIMEOUT"        yaml:"timeout"`
	PageTimeout   time.Duration `env:"FETCHER_PAGE_TIMEOUT"   yaml:"page_timeout"`
	MaxRedirects  int           `env:"FETCHER_MAX_REDIRECTS"  yaml:"max_redirects"`
	MaxBodyBytes  int64         `env:"FETCHER_MAX_BODY_BYTES" yaml:"max_body_bytes"`
	SecondaryRPS  float64       `env:"FETCHER_SECONDARY_RPS"  yaml:"secondary_rps"`
	RespectRobots bool          `env:"FETCHER_RESPECT_ROBOTS" yaml:"respect_robots_txt"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.PageTimeout <= 0 {
		c.PageTimeout = defaultPageTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.SecondaryRPS == 0 {
		c.SecondaryRPS = defaultSecondaryRPS
	}
	return c
}
