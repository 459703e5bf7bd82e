package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "auto", cfg.Firefox.ProfilePath)
	assert.True(t, cfg.Firefox.ExcludePrivate)
	assert.Equal(t, "local", cfg.Firefox.Timezone)
	assert.Equal(t, 365, cfg.Database.RetentionDays)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "23:30", cfg.Scheduler.Time)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
firefox:
  profile_path: /home/user/.mozilla/firefox/abc.default
database:
  retention_days: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/home/user/.mozilla/firefox/abc.default", cfg.Firefox.ProfilePath)
	assert.Equal(t, 30, cfg.Database.RetentionDays)
	// Unset keys keep their defaults
	assert.Equal(t, "23:30", cfg.Scheduler.Time)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("firefox: [not: valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: /from/file.db\n"), 0644))

	t.Setenv("DAYBOOK_DATABASE_PATH", "/from/env.db")
	t.Setenv("DAYBOOK_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Database.Path, "environment beats the file")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadOrCreateAt_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Firefox.ProfilePath)

	// The file now exists and loads back identically
	_, err = os.Stat(path)
	require.NoError(t, err)

	reloaded, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/daybook/daybook.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/daybook/daybook.db"), got)

	got, err = ExpandPath("/absolute/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path.db", got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestProfilePath_AutoMeansDiscovery(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "", cfg.ProfilePath())

	cfg.Firefox.ProfilePath = "/explicit/profile"
	assert.Equal(t, "/explicit/profile", cfg.ProfilePath())
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Firefox.Timezone = "Europe/Berlin"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	cfg.Firefox.Timezone = "Not/AZone"
	_, err = cfg.Location()
	assert.Error(t, err)
}
