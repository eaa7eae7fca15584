package insight

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is rejecting calls.
var ErrCircuitOpen = errors.New("circuit open")

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerGenerator stops calling a failing Generator after a run of
// consecutive failures and lets a single trial call through once the cooldown
// has passed.
type BreakerGenerator struct {
	next      Generator
	threshold int
	cooldown  time.Duration
	now       func() time.Time
	onChange  func(from, to string)

	mu       sync.Mutex
	state    breakerState
	failures int
	openedAt time.Time
}

// BreakerOption configures a BreakerGenerator.
type BreakerOption func(*BreakerGenerator)

// WithClock replaces the breaker clock.
func WithClock(now func() time.Time) BreakerOption {
	return func(b *BreakerGenerator) { b.now = now }
}

// WithStateChange registers a callback invoked on every state transition.
func WithStateChange(fn func(from, to string)) BreakerOption {
	return func(b *BreakerGenerator) { b.onChange = fn }
}

// NewBreakerGenerator wraps next.
func NewBreakerGenerator(next Generator, threshold int, cooldown time.Duration, opts ...BreakerOption) *BreakerGenerator {
	if threshold <= 0 {
		threshold = defaultBreakerFailures
	}
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}

	b := &BreakerGenerator{
		next:      next,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Generate implements Generator.
func (b *BreakerGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if !b.allow() {
		return "", ErrCircuitOpen
	}

	text, err := b.next.Generate(ctx, req)
	b.record(err)
	return text, err
}

func (b *BreakerGenerator) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false
		}
		b.transition(stateHalfOpen)
		return true
	case stateHalfOpen:
		// a trial call is already in flight
		return false
	default:
		return true
	}
}

func (b *BreakerGenerator) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.transition(stateClosed)
		return
	}

	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.threshold {
		b.openedAt = b.now()
		b.transition(stateOpen)
	}
}

func (b *BreakerGenerator) transition(to breakerState) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if to == stateClosed {
		b.failures = 0
	}
	if b.onChange != nil {
		b.onChange(from.String(), to.String())
	}
}
