package insight_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/insight"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestBreakerGenerator_OpensAndRecovers(t *testing.T) {
	t.Parallel()

	clock := &manualClock{now: time.Unix(0, 0)}
	gen := &fakeGenerator{err: errors.New("boom")}

	var transitions []string
	b := insight.NewBreakerGenerator(gen, 2, time.Minute,
		insight.WithClock(clock.Now),
		insight.WithStateChange(func(from, to string) { transitions = append(transitions, from+"->"+to) }),
	)
	ctx := context.Background()

	for range 2 {
		_, err := b.Generate(ctx, insight.Request{})
		require.EqualError(t, err, "boom")
	}

	_, err := b.Generate(ctx, insight.Request{})
	require.ErrorIs(t, err, insight.ErrCircuitOpen)
	assert.Equal(t, 2, gen.calls())

	clock.Advance(time.Minute)
	gen.mu.Lock()
	gen.err, gen.text = nil, "ok"
	gen.mu.Unlock()

	text, err := b.Generate(ctx, insight.Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreakerGenerator_FailedTrialReopens(t *testing.T) {
	t.Parallel()

	clock := &manualClock{now: time.Unix(0, 0)}
	gen := &fakeGenerator{err: errors.New("boom")}
	b := insight.NewBreakerGenerator(gen, 1, time.Minute, insight.WithClock(clock.Now))
	ctx := context.Background()

	_, _ = b.Generate(ctx, insight.Request{})
	clock.Advance(time.Minute)
	_, err := b.Generate(ctx, insight.Request{})
	require.EqualError(t, err, "boom")

	_, err = b.Generate(ctx, insight.Request{})
	require.ErrorIs(t, err, insight.ErrCircuitOpen)
	assert.Equal(t, 2, gen.calls())
}

func TestBreakerGenerator_SuccessResetsFailures(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	b := insight.NewBreakerGenerator(gen, 2, time.Minute)
	ctx := context.Background()

	gen.err = errors.New("boom")
	_, _ = b.Generate(ctx, insight.Request{})
	gen.err = nil
	_, _ = b.Generate(ctx, insight.Request{})
	gen.err = errors.New("boom")
	_, _ = b.Generate(ctx, insight.Request{})

	_, err := b.Generate(ctx, insight.Request{})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 4, gen.calls())
}
