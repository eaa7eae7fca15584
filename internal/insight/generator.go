package insight

import "context"

// Request is a single prompt submitted to a generative text service.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Generator produces text for a Request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
