package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"camsync/internal/platform"
	"camsync/pkg/config"
	"camsync/pkg/models"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if gf := GetGlobalFlags(); gf.ConfigFile != "" {
		return config.LoadFromFile(gf.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	if syncFlags.Workers > 0 {
		cfg.Performance.Workers = syncFlags.Workers
	}

	// Boolean flags only override when set, so a config file can turn
	// verify or move on permanently
	if cmd.Flags().Changed("verify") {
		cfg.Sync.Verify = syncFlags.Verify
	}
	if cmd.Flags().Changed("move") {
		cfg.Sync.Move = syncFlags.Move
	}

	if syncFlags.Output != "" {
		cfg.Output.Format = syncFlags.Output
	}
	if syncFlags.LogFile != "" {
		cfg.Logging.File = syncFlags.LogFile
	}
	if syncFlags.LogFormat != "" {
		cfg.Logging.Format = syncFlags.LogFormat
	}
	if syncFlags.LogLevel != "" {
		cfg.Logging.Level = syncFlags.LogLevel
	}

	gf := GetGlobalFlags()

	// Disable all non-error output in quiet mode
	if gf.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Verbose mode turns on debug logging
	if gf.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// newSyncOptions builds the options for one sync run from configuration.
// Paths are normalized and made absolute up front so the resume state
// always records absolute source paths, whatever the caller typed.
func newSyncOptions(cfg *config.Config, source, dest string) (*models.SyncOptions, error) {
	sourceAbs, err := filepath.Abs(platform.NormalizePath(source))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}
	destAbs, err := filepath.Abs(platform.NormalizePath(dest))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination path: %w", err)
	}

	opts := &models.SyncOptions{
		ID:         uuid.New().String(),
		SourcePath: sourceAbs,
		DestPath:   destAbs,
		Workers:    cfg.Performance.Workers,
		BufferSize: cfg.Performance.BufferSize,
		DryRun:     syncFlags.DryRun,
		Verify:     cfg.Sync.Verify,
		Move:       cfg.Sync.Move,
		Resume:     syncFlags.Resume,
		CreatedAt:  time.Now(),
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}
