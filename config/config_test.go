package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: -4\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data/stagekit.db", cfg.Storage.Path)
	assert.Equal(t, 15.0, cfg.Engine.BaseTransitionSeconds)
	assert.Equal(t, 0.2, cfg.Engine.BpmPenaltyPerBpm)
	assert.Equal(t, 10.0, cfg.Engine.KeyMismatchPenalty)
	assert.Equal(t, 45.0, cfg.Engine.MaxTransitionSeconds)
	assert.Equal(t, 240, cfg.Engine.DefaultSongDurationSeconds)
	assert.Equal(t, 0.8, cfg.Engine.DuplicateThreshold)
	assert.Equal(t, 5, cfg.Engine.RankLimit)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
storage:
  path: /tmp/test.db
engine:
  base_transition_seconds: 20
  rank_limit: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
	assert.Equal(t, 20.0, cfg.Engine.BaseTransitionSeconds)
	assert.Equal(t, 10, cfg.Engine.RankLimit)
	// Unset values still default.
	assert.Equal(t, 0.2, cfg.Engine.BpmPenaltyPerBpm)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15.0, cfg.Engine.BaseTransitionSeconds)
}
