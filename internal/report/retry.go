package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrRetriesExhausted is returned when every upload attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// RetryConfig configures upload retries.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"  env:"REPORTS_S3_MAX_ATTEMPTS"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Multiplier   float64       `yaml:"multiplier"`
	// IsRetryable decides whether an error warrants another attempt.
	IsRetryable func(error) bool `yaml:"-"`
}

// WithDefaults fills zero values.
func (c RetryConfig) WithDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 200 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 5 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.IsRetryable == nil {
		c.IsRetryable = IsTransient
	}
	return c
}

var transientPatterns = []string{
	"timeout",
	"deadline exceeded",
	"connection refused",
	"connection reset",
	"no such host",
	"temporary failure",
	"network is unreachable",
	"slowdown",
	"internalerror",
	"serviceunavailable",
	"statuscode: 500",
	"statuscode: 502",
	"statuscode: 503",
}

// IsTransient reports whether err looks like a network or throttling failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// retry runs fn until it succeeds, returns a non-retryable error, or the
// attempts run out. Delays grow exponentially up to MaxDelay.
func retry(ctx context.Context, cfg RetryConfig, fn func(context.Context) error) error {
	cfg = cfg.WithDefaults()

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !cfg.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := time.Duration(float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1)))
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, cfg.MaxAttempts, lastErr)
}
