package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAdapterName, cfg.Adapter.Name)
	assert.Equal(t, 5*time.Second, cfg.Adapter.ProbeTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Bridge.Timeout)
	assert.True(t, cfg.Audit.Enabled)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Equal(t, os.TempDir(), cfg.TempDir())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
adapter:
  name: my-ui
bridge:
  temp_dir: ` + dir + `
  timeout: 90s
audit:
  enabled: false
history:
  db_path: ` + filepath.Join(dir, "h.db") + `
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-ui", cfg.Adapter.Name)
	assert.Equal(t, 5*time.Second, cfg.Adapter.ProbeTimeout, "unset fields keep defaults")
	assert.Equal(t, 90*time.Second, cfg.Bridge.Timeout)
	assert.Equal(t, dir, cfg.TempDir())
	assert.False(t, cfg.Audit.Enabled)
	assert.False(t, IsAuditEnabled())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "h.db"), cfg.History.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Same(t, cfg, Get())
}

func TestLoadZeroTimeoutMeansUnbounded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bridge:\n  timeout: 0s\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Bridge.Timeout)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adapter: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/etc/claude-confirm.yaml")
	assert.Equal(t, "/etc/claude-confirm.yaml", DefaultPath())
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, home, expandHomePath("~"))
	assert.Equal(t, filepath.Join(home, "x", "y"), expandHomePath("~/x/y"))
	assert.Equal(t, "/abs/path", expandHomePath("/abs/path"))
	assert.Equal(t, "", expandHomePath(""))
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	for name, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	} {
		cfg.Logging.Level = name
		assert.Equal(t, want, cfg.LogLevel(), name)
	}
}
