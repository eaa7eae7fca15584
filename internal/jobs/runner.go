// Package jobs runs audit functions in the background and relays their
// progress as an ordered event stream.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/metrics"
)

const (
	defaultKeepAlive = 60 * time.Second
	eventBuffer      = 16
)

// Config holds job relay settings.
type Config struct {
	// KeepAlive is how long the relay waits for an event before emitting a ping.
	KeepAlive time.Duration `env:"JOBS_KEEP_ALIVE" yaml:"keep_alive"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.KeepAlive <= 0 {
		c.KeepAlive = defaultKeepAlive
	}
	return c
}

// Func is the work a job runs. Lines logged to progress are relayed as log
// events; the returned value or error becomes the terminal event.
type Func func(ctx context.Context, progress *Progress) (any, error)

// Progress collects log lines for one job. It satisfies pipeline.Sink.
type Progress struct {
	q *queue
}

// Log relays line. Lines logged after the job finished are dropped.
func (p *Progress) Log(line string) {
	p.q.push(Event{Kind: KindLog, Text: line})
}

// Runner starts jobs.
type Runner struct {
	cfg     Config
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewRunner creates a Runner. m may be nil.
func NewRunner(cfg Config, log logger.Logger, m *metrics.Metrics) *Runner {
	return &Runner{cfg: cfg.WithDefaults(), log: log, metrics: m}
}

// Job is a running function and its event stream.
type Job struct {
	ID string

	q        *queue
	events   chan Event
	finished chan struct{}
}

// Events yields log and ping events in order, then exactly one done or
// error event, then closes. It also closes early when the job context is
// cancelled.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Finished is closed once the job function has returned.
func (j *Job) Finished() <-chan struct{} {
	return j.finished
}

// Start runs fn on its own goroutine. Cancelling ctx stops the relay and is
// passed on to fn.
func (r *Runner) Start(ctx context.Context, fn Func) *Job {
	j := &Job{
		ID:       uuid.NewString(),
		q:        newQueue(),
		events:   make(chan Event, eventBuffer),
		finished: make(chan struct{}),
	}
	log := r.log.With(logger.String("job_id", j.ID))

	r.metrics.RunStarted()
	log.Info("Job started")

	go r.execute(ctx, j, fn, log)
	go r.relay(ctx, j)

	return j
}

func (r *Runner) execute(ctx context.Context, j *Job, fn Func, log logger.Logger) {
	start := time.Now()
	finish := func(ev Event) {
		outcome := string(ev.Kind)
		r.metrics.RunFinished(outcome)
		log.Info("Job finished", logger.String("outcome", outcome), logger.Duration("elapsed", time.Since(start)))
		j.q.push(ev)
		close(j.finished)
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Job panicked", logger.Any("panic", rec))
			finish(Event{Kind: KindError, Text: fmt.Sprint(rec)})
		}
	}()

	result, err := fn(ctx, &Progress{q: j.q})
	if err != nil {
		finish(Event{Kind: KindError, Text: err.Error()})
		return
	}
	finish(Event{Kind: KindDone, Result: result})
}

func (r *Runner) relay(ctx context.Context, j *Job) {
	defer close(j.events)

	idle := time.NewTimer(r.cfg.KeepAlive)
	defer idle.Stop()

	for {
		if ev, ok := j.q.pop(); ok {
			if !send(ctx, j.events, ev) || ev.Terminal() {
				return
			}
			idle.Reset(r.cfg.KeepAlive)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-j.q.notify:
		case <-idle.C:
			if !send(ctx, j.events, Event{Kind: KindPing}) {
				return
			}
			idle.Reset(r.cfg.KeepAlive)
		}
	}
}

func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
