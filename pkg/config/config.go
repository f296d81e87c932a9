package config

import (
	"time"
)

// Config holds the orchestrator settings. Values come from DefaultConfig,
// then an optional YAML file, then explicitly set command-line flags.
type Config struct {
	BaseDir   string          `yaml:"base_dir"` // Directory holding introducer/ and node/
	Tool      string          `yaml:"tool"`     // Node management executable (tahoe)
	Logging   LoggingConfig   `yaml:"logging"`
	Handshake HandshakeConfig `yaml:"handshake"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR, CRITICAL
	Color bool   `yaml:"color"` // ANSI colors on the console
}

// HandshakeConfig controls how long launch waits for the introducer's furl.
type HandshakeConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout"` // 0 waits forever
}

const (
	DefaultTool         = "tahoe"
	DefaultLogLevel     = "DEBUG"
	DefaultPollInterval = 1 * time.Second
)

// DefaultConfig returns a config with defaults applied. BaseDir has no
// default and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Tool: DefaultTool,
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		Handshake: HandshakeConfig{
			PollInterval: DefaultPollInterval,
		},
	}
}
