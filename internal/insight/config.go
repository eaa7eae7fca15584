package insight

import "time"

// Defaults for the analysis request.
const (
	DefaultModel           = "claude-haiku-4-5"
	defaultMaxTokens       = 150
	defaultTemperature     = 0.7
	defaultTimeout         = 30 * time.Second
	defaultBreakerFailures = 3
	defaultBreakerCooldown = 2 * time.Minute
)

// Config holds generative service settings. A nil Temperature selects the
// default; zero is a valid setting.
type Config struct {
	APIKey          string        `env:"ANTHROPIC_API_KEY"        yaml:"api_key"`
	Model           string        `env:"LLM_MODEL"                yaml:"model"`
	MaxTokens       int           `env:"LLM_MAX_TOKENS"           yaml:"max_tokens"`
	Temperature     *float64      `env:"LLM_TEMPERATURE"          yaml:"temperature"`
	Timeout         time.Duration `env:"LLM_TIMEOUT"              yaml:"timeout"`
	BreakerFailures int           `env:"LLM_BREAKER_FAILURES"     yaml:"breaker_failures"`
	BreakerCooldown time.Duration `env:"LLM_BREAKER_COOLDOWN"     yaml:"breaker_cooldown"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Temperature == nil {
		c.Temperature = Float(defaultTemperature)
	} else {
		c.Temperature = Float(*c.Temperature)
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.BreakerFailures <= 0 {
		c.BreakerFailures = defaultBreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = defaultBreakerCooldown
	}
	return c
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
