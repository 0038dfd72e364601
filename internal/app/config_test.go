package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/freesound-grabber/internal/config"
)

// TestExecuteConfigInitCommand tests writing the default configuration.
func TestExecuteConfigInitCommand(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configPath := filepath.Join(t.TempDir(), "freesound.yaml")

	require.NoError(t, ExecuteConfigInitCommand(ctx, configPath, false))

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	err = ExecuteConfigInitCommand(ctx, configPath, false)
	require.ErrorIs(t, err, os.ErrExist)

	require.NoError(t, ExecuteConfigInitCommand(ctx, configPath, true))
}
