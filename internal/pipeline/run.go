package pipeline

import (
	"fmt"
	"time"

	"github.com/jonesrussell/scout/internal/fetcher"
	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/insight"
)

// Sink receives human-readable progress lines for one run.
type Sink interface {
	Log(line string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(line string)

// Log implements Sink.
func (f SinkFunc) Log(line string) { f(line) }

// Run is the state owned by one audit run. Nothing in it is shared with
// other runs.
type Run struct {
	ID        string
	Profile   *industry.Profile
	Session   *fetcher.Session
	Analyzer  *insight.Analyzer
	Sink      Sink
	DryRun    bool
	StartedAt time.Time
}

// Close releases the run's HTTP session.
func (r *Run) Close() {
	if r.Session != nil {
		r.Session.Close()
	}
}

func (r *Run) logf(format string, args ...any) {
	if r.Sink == nil {
		return
	}
	r.Sink.Log(fmt.Sprintf(format, args...))
}
