package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAdapterName is the presentation adapter executable
	DefaultAdapterName = "claude-confirm-ui"

	// ConfigEnvVar overrides the default config file location
	ConfigEnvVar = "CLAUDE_CONFIRM_CONFIG"

	defaultProbeTimeout  = 5 * time.Second
	defaultBridgeTimeout = 30 * time.Minute
	defaultDataDir       = "~/.claude-confirm"
)

var globalConfig *Config

// Load reads the configuration file. A missing file is not an error: the
// defaults are used instead.
func Load(configPath string) (*Config, error) {
	// If path is empty, use default
	if configPath == "" {
		configPath = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(cfg)

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		// Return default config if not loaded
		return Default()
	}
	return globalConfig
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{
		Adapter: AdapterConfig{
			Name:         DefaultAdapterName,
			ProbeTimeout: defaultProbeTimeout,
		},
		Bridge: BridgeConfig{
			Timeout: defaultBridgeTimeout,
		},
		Audit: AuditConfig{
			Enabled: true,
			LogPath: filepath.Join(defaultDataDir, "audit.log"),
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(defaultDataDir, "history.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
	applyDefaults(cfg)
	return cfg
}

// DefaultPath returns the config file location
// Priority: CLAUDE_CONFIRM_CONFIG env var > ~/.claude-confirm/config.yaml
func DefaultPath() string {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		return expandHomePath(path)
	}
	return expandHomePath(filepath.Join(defaultDataDir, "config.yaml"))
}

// GetAuditLogPath returns the full path to audit log
func GetAuditLogPath() string {
	return Get().Audit.LogPath
}

// IsAuditEnabled checks if audit logging is enabled
func IsAuditEnabled() bool {
	return Get().Audit.Enabled
}

// TempDir returns the directory for request artifacts
func (c *Config) TempDir() string {
	if c.Bridge.TempDir != "" {
		return c.Bridge.TempDir
	}
	return os.TempDir()
}

// LogLevel maps the configured level name to a slog level
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Adapter.Name == "" {
		cfg.Adapter.Name = DefaultAdapterName
	}
	if cfg.Adapter.ProbeTimeout <= 0 {
		cfg.Adapter.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.Bridge.Timeout < 0 {
		cfg.Bridge.Timeout = 0
	}
	if cfg.Audit.LogPath == "" {
		cfg.Audit.LogPath = filepath.Join(defaultDataDir, "audit.log")
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = filepath.Join(defaultDataDir, "history.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	cfg.Bridge.TempDir = expandHomePath(cfg.Bridge.TempDir)
	cfg.Audit.LogPath = expandHomePath(cfg.Audit.LogPath)
	cfg.History.DBPath = expandHomePath(cfg.History.DBPath)
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if len(path) == 0 {
		return path
	}

	// Handle ~ at the beginning of the path
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path // Return unchanged if we can't get home dir
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle ~/something
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}
	}

	return path
}
