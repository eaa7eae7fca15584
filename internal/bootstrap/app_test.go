package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/bootstrap"
	"github.com/jonesrussell/scout/internal/config"
	"github.com/jonesrussell/scout/internal/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.SetDefaults()
	cfg.Paths.Industries = t.TempDir()
	cfg.Server.Port = 18080

	app, err := bootstrap.New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, app.Audits)
	assert.NotNil(t, app.Advisor)
	assert.NotNil(t, app.Runner)

	families, err := app.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	srv := app.Server()
	assert.Equal(t, ":18080", srv.Addr())
}
