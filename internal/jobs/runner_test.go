package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/metrics"
)

const waitTimeout = 5 * time.Second

func newRunner(keepAlive time.Duration) *jobs.Runner {
	return jobs.NewRunner(jobs.Config{KeepAlive: keepAlive}, logger.NewNop(), nil)
}

// collect drains the job's events until the channel closes.
func collect(t *testing.T, j *jobs.Job) []jobs.Event {
	t.Helper()

	var events []jobs.Event
	deadline := time.After(waitTimeout)
	for {
		select {
		case ev, ok := <-j.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			t.Fatalf("events channel not closed after %s; got %d events", waitTimeout, len(events))
			return nil
		}
	}
}

func kinds(events []jobs.Event) []jobs.Kind {
	out := make([]jobs.Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestRunner_LogsThenDone(t *testing.T) {
	t.Parallel()

	j := newRunner(time.Minute).Start(context.Background(), func(_ context.Context, p *jobs.Progress) (any, error) {
		p.Log("first")
		p.Log("second")
		p.Log("third")
		return map[string]int{"total": 3}, nil
	})

	events := collect(t, j)

	require.Equal(t, []jobs.Kind{jobs.KindLog, jobs.KindLog, jobs.KindLog, jobs.KindDone}, kinds(events))
	assert.Equal(t, "first", events[0].Text)
	assert.Equal(t, "second", events[1].Text)
	assert.Equal(t, "third", events[2].Text)
	assert.Equal(t, map[string]int{"total": 3}, events[3].Result)
	assert.NotEmpty(t, j.ID)
}

func TestRunner_ErrorIsTerminal(t *testing.T) {
	t.Parallel()

	j := newRunner(time.Minute).Start(context.Background(), func(_ context.Context, p *jobs.Progress) (any, error) {
		p.Log("loading profile")
		return nil, errors.New("industry not found: dentists")
	})

	events := collect(t, j)

	require.Equal(t, []jobs.Kind{jobs.KindLog, jobs.KindError}, kinds(events))
	assert.Equal(t, "industry not found: dentists", events[1].Text)
}

func TestRunner_PanicBecomesError(t *testing.T) {
	t.Parallel()

	j := newRunner(time.Minute).Start(context.Background(), func(context.Context, *jobs.Progress) (any, error) {
		panic("stage machine broke")
	})

	events := collect(t, j)

	require.Len(t, events, 1)
	assert.Equal(t, jobs.KindError, events[0].Kind)
	assert.Contains(t, events[0].Text, "stage machine broke")
}

func TestRunner_PingWhileIdle(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	j := newRunner(10*time.Millisecond).Start(context.Background(), func(_ context.Context, p *jobs.Progress) (any, error) {
		p.Log("started")
		<-release
		return "ok", nil
	})

	var seen []jobs.Event
	deadline := time.After(waitTimeout)
	for len(seen) < 2 {
		select {
		case ev := <-j.Events():
			seen = append(seen, ev)
		case <-deadline:
			t.Fatal("no ping received")
		}
	}
	close(release)
	seen = append(seen, collect(t, j)...)

	assert.Equal(t, jobs.KindLog, seen[0].Kind)
	assert.Equal(t, jobs.KindPing, seen[1].Kind)
	last := seen[len(seen)-1]
	assert.Equal(t, jobs.KindDone, last.Kind)
	assert.Equal(t, "ok", last.Result)
	for _, ev := range seen[2 : len(seen)-1] {
		assert.Equal(t, jobs.KindPing, ev.Kind)
	}
}

func TestRunner_LateLogsDropped(t *testing.T) {
	t.Parallel()

	var captured *jobs.Progress
	j := newRunner(time.Minute).Start(context.Background(), func(_ context.Context, p *jobs.Progress) (any, error) {
		captured = p
		return nil, nil
	})

	<-j.Finished()
	captured.Log("after the end")

	events := collect(t, j)
	require.Equal(t, []jobs.Kind{jobs.KindDone}, kinds(events))
}

func TestRunner_CancelStopsRelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	j := newRunner(time.Minute).Start(ctx, func(ctx context.Context, p *jobs.Progress) (any, error) {
		p.Log("waiting")
		<-ctx.Done()
		return nil, ctx.Err()
	})

	select {
	case ev := <-j.Events():
		assert.Equal(t, jobs.KindLog, ev.Kind)
	case <-time.After(waitTimeout):
		t.Fatal("no log event")
	}
	cancel()

	// The relay may or may not deliver the terminal event before it observes
	// cancellation, but the stream always closes.
	for _, ev := range collect(t, j) {
		assert.NotEqual(t, jobs.KindDone, ev.Kind)
	}

	select {
	case <-j.Finished():
	case <-time.After(waitTimeout):
		t.Fatal("job function did not return")
	}
}

func TestRunner_JobsAreIndependent(t *testing.T) {
	t.Parallel()

	r := newRunner(time.Minute)
	a := r.Start(context.Background(), func(_ context.Context, p *jobs.Progress) (any, error) {
		p.Log("a")
		return "a", nil
	})
	b := r.Start(context.Background(), func(_ context.Context, p *jobs.Progress) (any, error) {
		p.Log("b")
		return "b", nil
	})

	assert.NotEqual(t, a.ID, b.ID)

	ea, eb := collect(t, a), collect(t, b)
	require.Len(t, ea, 2)
	require.Len(t, eb, 2)
	assert.Equal(t, "a", ea[0].Text)
	assert.Equal(t, "b", eb[0].Text)
}

func TestRunner_Metrics(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	r := jobs.NewRunner(jobs.Config{}, logger.NewNop(), m)

	collect(t, r.Start(context.Background(), func(context.Context, *jobs.Progress) (any, error) {
		return nil, nil
	}))
	collect(t, r.Start(context.Background(), func(context.Context, *jobs.Progress) (any, error) {
		return nil, errors.New("boom")
	}))

	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsTotal.WithLabelValues("done")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsTotal.WithLabelValues("error")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.RunsInFlight), 0)
}
