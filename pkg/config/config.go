// Package config holds the application configuration and its YAML
// persistence. Command-line flags override anything loaded here.
package config

import (
	"camsync/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Sync        SyncConfig        `yaml:"sync"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SyncConfig holds sync-related settings
type SyncConfig struct {
	Verify bool `yaml:"verify"`
	Move   bool `yaml:"move"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	Workers    int `yaml:"workers"`
	BufferSize int `yaml:"buffer_size"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human", "progress" or "json"
	Progress bool   `yaml:"progress"` // show a progress bar instead of per-file lines
	Quiet    bool   `yaml:"quiet"`    // suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "text" or "json"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // log file path (empty = console only)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Performance: PerformanceConfig{
			Workers:    models.DefaultWorkers(),
			BufferSize: 64 * 1024,
		},
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Performance.Workers < 1 {
		return &models.ValidationError{Field: "performance.workers", Message: "must be at least 1"}
	}
	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{Field: "performance.buffer_size", Message: "must be at least 1024 bytes"}
	}
	switch c.Output.Format {
	case "human", "progress", "json":
	default:
		return &models.ValidationError{Field: "output.format", Message: "must be human, progress or json"}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &models.ValidationError{Field: "logging.format", Message: "must be text or json"}
	}
	return nil
}
