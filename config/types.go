package config

import (
	"time"
)

// Config represents the application configuration
type Config struct {
	Adapter AdapterConfig `yaml:"adapter"`
	Bridge  BridgeConfig  `yaml:"bridge"`
	Audit   AuditConfig   `yaml:"audit"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// AdapterConfig controls how the presentation adapter is located
type AdapterConfig struct {
	Name         string        `yaml:"name"`          // Executable name, colocated or on PATH
	ProbeTimeout time.Duration `yaml:"probe_timeout"` // Bound on the "--version" probe
}

// BridgeConfig controls the request/response round trip
type BridgeConfig struct {
	TempDir string        `yaml:"temp_dir"` // Where request artifacts are written (default: OS temp dir)
	Timeout time.Duration `yaml:"timeout"`  // 0 waits for the adapter indefinitely
}

// AuditConfig defines audit logging settings
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogPath string `yaml:"log_path"`
}

// HistoryConfig defines the confirmation history store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LoggingConfig defines diagnostic logging (always written to stderr)
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
