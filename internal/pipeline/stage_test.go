package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_HappyPath(t *testing.T) {
	t.Parallel()

	tr := newTracker()
	for _, s := range []Stage{StageFetching, StageExtracting, StageScoring, StageAnalyzing, StageComposing, StageOK} {
		require.NoError(t, tr.advance(s), "advance to %s", s)
	}
	assert.True(t, tr.current.Terminal())
}

func TestTracker_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []Stage
		next Stage
	}{
		{name: "skip a stage", path: []Stage{StageFetching}, next: StageScoring},
		{name: "go backwards", path: []Stage{StageFetching, StageExtracting}, next: StageFetching},
		{name: "fail after extraction", path: []Stage{StageFetching, StageExtracting}, next: StageFailed},
		{name: "skip once started", path: []Stage{StageFetching}, next: StageSkipped},
		{name: "leave failed", path: []Stage{StageFetching, StageFailed}, next: StageExtracting},
		{name: "leave skipped", path: []Stage{StageSkipped}, next: StageFetching},
		{name: "ok from pending", path: nil, next: StageOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := newTracker()
			for _, s := range tt.path {
				require.NoError(t, tr.advance(s))
			}
			err := tr.advance(tt.next)
			require.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestTracker_MustAdvancePanics(t *testing.T) {
	t.Parallel()

	tr := newTracker()
	assert.Panics(t, func() { tr.mustAdvance(StageComposing) })
}
