package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DTX_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Sheet1", cfg.Data.SheetName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DTX_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DTX_SERVER_PORT", "9090")
	t.Setenv("DTX_DATA_SHEET_NAME", "数据表")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "数据表", cfg.Data.SheetName)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"server:\n  port: 9999\ndata:\n  source_file: data/test.xlsx\n"), 0644))
	t.Setenv("DTX_CONFIG_FILE", configPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "data/test.xlsx", cfg.Data.SourceFile)
	// Untouched settings keep their defaults
	assert.Equal(t, "Sheet1", cfg.Data.SheetName)
}

func TestLoad_InvalidPortRejected(t *testing.T) {
	t.Setenv("DTX_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DTX_SERVER_PORT", "-1")

	_, err := Load()
	assert.Error(t, err)
}
