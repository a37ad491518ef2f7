package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Data.MaxSnapshots)
	require.Equal(t, "auto", cfg.Display.Theme)
	require.False(t, cfg.Notify.Enabled)
	require.Contains(t, cfg.Data.File, "novel_forge_db.json")
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `data:
  file: /tmp/book.json
  max_snapshots: 9
display:
  theme: dark
notify:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/book.json", cfg.Data.File)
	require.Equal(t, 9, cfg.Data.MaxSnapshots)
	require.Equal(t, "dark", cfg.Display.Theme)
	require.True(t, cfg.Notify.Enabled)

	// Unset keys keep their defaults.
	require.NotEmpty(t, cfg.Data.SnapshotDir)
}

func TestLoadConfigRejectsNonPositiveMaxSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  max_snapshots: 0\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Data.MaxSnapshots)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.Notify.Enabled = true
	cfg.Display.Theme = "light"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, got.Notify.Enabled)
	require.Equal(t, "light", got.Display.Theme)
	require.Equal(t, cfg.Data.File, got.Data.File)
}
