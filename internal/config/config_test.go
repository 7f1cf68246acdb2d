package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 90, cfg.Game.NightSeconds)
	assert.Equal(t, 180, cfg.Game.DaySeconds)
	assert.Equal(t, 3, cfg.Game.HandSize)
}

func TestLoadReadsFile(t *testing.T) {
	dir := chdirTemp(t)
	content := `
addr: ":9090"
game:
  night_seconds: 45
  hand_size: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cauldron.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 45, cfg.Game.NightSeconds)
	assert.Equal(t, 180, cfg.Game.DaySeconds, "unset keys keep their defaults")
	assert.Equal(t, 4, cfg.Game.HandSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CAULDRON_ADDR", ":7070")
	t.Setenv("CAULDRON_GAME_DAY_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 60, cfg.Game.DaySeconds)
}

func TestEngineConfigMapsGameBlock(t *testing.T) {
	cfg := Config{Game: Game{NightSeconds: 30, DaySeconds: 40, HandSize: 5}}
	ec := cfg.EngineConfig()
	assert.Equal(t, 30, ec.NightSeconds)
	assert.Equal(t, 40, ec.DaySeconds)
	assert.Equal(t, 5, ec.HandSize)

	zero := Config{}.EngineConfig()
	assert.Equal(t, 90, zero.NightSeconds, "zero values fall back to engine defaults")
}
