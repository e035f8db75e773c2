package runtimeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablecodec/pbcore/cliargs"
)

func TestDefaultMatchesPackageConstants(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 64, cfg.StackDepth)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pbcore.yaml")

	cfg := Default()
	cfg.StackDepth = 128
	cfg.LogLevel = "debug"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, loaded.StackDepth)
	assert.Equal(t, "debug", loaded.LogLevel)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyArgsOverridesDefaults(t *testing.T) {
	a := cliargs.Parse([]string{"-stack-depth=128", "-log-level=warn"})
	cfg := Default()
	ApplyArgs(cfg, a)
	assert.Equal(t, 128, cfg.StackDepth)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestFromArgsLayersFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pbcore.yaml")
	base := Default()
	base.StackDepth = 32
	require.NoError(t, Save(base, path))

	a := cliargs.Parse([]string{"-config=" + path, "-log-level=error"})
	cfg, err := FromArgs(a)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.StackDepth)
	assert.Equal(t, "error", cfg.LogLevel)

	_ = os.Remove(path)
}
