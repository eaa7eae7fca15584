package pipeline

import "time"

const defaultPolitenessDelay = 500 * time.Millisecond

// Config holds run sequencing settings.
type Config struct {
	// PolitenessDelay is slept between consecutive targets of a live run.
	// A negative value disables it.
	PolitenessDelay time.Duration `env:"PIPELINE_POLITENESS_DELAY" yaml:"politeness_delay"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.PolitenessDelay == 0 {
		c.PolitenessDelay = defaultPolitenessDelay
	}
	return c
}
