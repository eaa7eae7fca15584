package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/jonesrussell/scout/internal/fetcher"
	"github.com/jonesrussell/scout/internal/insight"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/outreach"
	"github.com/jonesrussell/scout/internal/pipeline"
	"github.com/jonesrussell/scout/internal/report"
)

// Server defaults.
const (
	defaultServerPort         = 8080
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 0 // streams run as long as the audit
	defaultServerIdleTimeout  = 60 * time.Second
	defaultShutdownTimeout    = 15 * time.Second
)

// Directory defaults.
const (
	defaultIndustriesDir = "industries"
	defaultTargetsDir    = "targets"
	defaultReportsDir    = "reports"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"  yaml:"host"`
	Port            int           `env:"SERVER_PORT"  yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `env:"SERVER_DEBUG" yaml:"debug"`
}

// Address returns host:port.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// SetDefaults applies default values for ServerConfig.
func (c *ServerConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = defaultServerPort
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaultServerReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaultServerWriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaultServerIdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
}

// PathsConfig locates profiles, target lists and reports.
type PathsConfig struct {
	Industries string `env:"SCOUT_INDUSTRIES_DIR" yaml:"industries"`
	Targets    string `env:"SCOUT_TARGETS_DIR"    yaml:"targets"`
	Reports    string `env:"SCOUT_REPORTS_DIR"    yaml:"reports"`
}

// SetDefaults applies default values for PathsConfig.
func (c *PathsConfig) SetDefaults() {
	if c.Industries == "" {
		c.Industries = defaultIndustriesDir
	}
	if c.Targets == "" {
		c.Targets = defaultTargetsDir
	}
	if c.Reports == "" {
		c.Reports = defaultReportsDir
	}
}

// Config is the complete scout configuration.
type Config struct {
	Logging  logger.Config   `yaml:"logging"`
	Server   ServerConfig    `yaml:"server"`
	Paths    PathsConfig     `yaml:"paths"`
	Fetcher  fetcher.Config  `yaml:"fetcher"`
	Insight  insight.Config  `yaml:"insight"`
	Pipeline pipeline.Config `yaml:"pipeline"`
	Jobs     jobs.Config     `yaml:"jobs"`
	Outreach outreach.Config `yaml:"outreach"`
	S3       report.S3Config `yaml:"s3"`
}

// Load reads path, applies defaults and validates.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile[Config](path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaults fills every section. Component configs that default
// themselves at construction are normalized here too so the effective values
// are visible to callers.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.Server.SetDefaults()
	c.Paths.SetDefaults()
	c.Fetcher = c.Fetcher.WithDefaults()
	c.Insight = c.Insight.WithDefaults()
	c.Pipeline = c.Pipeline.WithDefaults()
	c.Jobs = c.Jobs.WithDefaults()
	c.Outreach = c.Outreach.WithDefaults()
	c.S3.Retry = c.S3.Retry.WithDefaults()
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	var errs []error

	if err := validateLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := validateLogFormat(c.Logging.Format); err != nil {
		errs = append(errs, err)
	}
	if err := validatePort("server.port", c.Server.Port); err != nil {
		errs = append(errs, err)
	}
	if t := c.Insight.Temperature; t != nil && (*t < 0 || *t > 1) {
		errs = append(errs, &ValidationError{Field: "insight.temperature", Message: "must be between 0 and 1"})
	}
	if c.S3.Enabled && c.S3.Bucket == "" {
		errs = append(errs, &ValidationError{Field: "s3.bucket", Message: "is required when s3 is enabled"})
	}

	return errors.Join(errs...)
}
