package insight_test

import (
	"context"
	"sync"

	"github.com/jonesrussell/scout/internal/insight"
)

// fakeGenerator replays canned responses and records every request.
type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []insight.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req insight.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.text, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
