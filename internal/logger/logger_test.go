package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/logger"
)

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"", logger.FormatJSON, logger.FormatConsole} {
		t.Run("format="+format, func(t *testing.T) {
			t.Parallel()
			l, err := logger.New(logger.Config{Level: "debug", Format: format, OutputPaths: []string{"stderr"}})
			require.NoError(t, err)
			l.With(logger.String("run_id", "abc")).Debug("hello", logger.Int("n", 1))
		})
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	var cfg logger.Config
	cfg.SetDefaults()

	assert.Equal(t, logger.DefaultLevel, cfg.Level)
	assert.Equal(t, logger.FormatJSON, cfg.Format)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{})
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
}

func TestFromContext_NoLogger_ReturnsFallback(t *testing.T) {
	t.Parallel()

	got := logger.FromContext(context.Background())
	require.NotNil(t, got)
	got.Warn("fallback is usable", logger.String("key", "value"))
}
