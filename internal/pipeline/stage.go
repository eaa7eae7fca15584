package pipeline

import (
	"errors"
	"fmt"
)

// Stage is a per-target pipeline state.
type Stage string

// Stages in the order a target moves through them.
const (
	StagePending    Stage = "pending"
	StageFetching   Stage = "fetching"
	StageExtracting Stage = "extracting"
	StageScoring    Stage = "scoring"
	StageAnalyzing  Stage = "analyzing"
	StageComposing  Stage = "composing"
	StageOK         Stage = "ok"
	StageFailed     Stage = "failed"
	StageSkipped    Stage = "skipped"
)

// ErrInvalidTransition is returned for any move the stage machine forbids.
var ErrInvalidTransition = errors.New("invalid stage transition")

var nextStage = map[Stage]Stage{
	StagePending:    StageFetching,
	StageFetching:   StageExtracting,
	StageExtracting: StageScoring,
	StageScoring:    StageAnalyzing,
	StageAnalyzing:  StageComposing,
	StageComposing:  StageOK,
}

// Terminal reports whether no stage may follow s.
func (s Stage) Terminal() bool {
	return s == StageOK || s == StageFailed || s == StageSkipped
}

// tracker enforces forward-only, one-step transitions for a single target.
type tracker struct {
	current Stage
}

func newTracker() *tracker {
	return &tracker{current: StagePending}
}

func (t *tracker) advance(to Stage) error {
	from := t.current
	if from.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, from)
	}

	allowed := nextStage[from] == to ||
		(from == StagePending && to == StageSkipped) ||
		(from == StageFetching && to == StageFailed)
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	t.current = to
	return nil
}

// mustAdvance panics on a forbidden transition. Only orchestrator bugs reach
// it; the job runner reports the panic as a terminal error event.
func (t *tracker) mustAdvance(to Stage) {
	if err := t.advance(to); err != nil {
		panic(err)
	}
}
