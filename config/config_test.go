package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Encoding)
	require.True(t, cfg.Schema.Validation)
	require.Equal(t, 0, cfg.Workers)
}

func TestFileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\nworkers: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, 2, cfg.Workers)
	// untouched keys keep their defaults
	require.Equal(t, "console", cfg.Log.Encoding)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KZG_LOG_LEVEL", "debug")
	t.Setenv("KZG_SCHEMA_VALIDATION", "false")
	t.Setenv("KZG_WORKERS", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Schema.Validation)
	require.Equal(t, 3, cfg.Workers)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}
