package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"camsync/pkg/logging"
	"camsync/pkg/output"
	"camsync/pkg/sync"
)

// SyncFlags holds sync command flags
type SyncFlags struct {
	Workers int
	DryRun  bool
	Verify  bool
	Move    bool
	Resume  bool
	Output  string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var syncFlags SyncFlags

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync SOURCE DEST",
		Short: "Import media files from a camera tree into a dated library",
		Long: `Scan SOURCE recursively for photo and video files, then copy them into
DEST organized by capture date (year/month/day, with photos in a photos
subfolder). Files already present with identical content are skipped.
Interrupted runs can be picked up again with --resume.`,
		Args: cobra.ExactArgs(2),
		RunE: runSync,
	}

	cmd.Flags().IntVarP(&syncFlags.Workers, "workers", "w", 0, "number of concurrent workers (default: min(4, CPU cores))")
	cmd.Flags().BoolVar(&syncFlags.DryRun, "dry-run", false, "report what would be done without writing anything")
	cmd.Flags().BoolVar(&syncFlags.Verify, "verify", false, "re-hash each file after transfer and compare against the source")
	cmd.Flags().BoolVar(&syncFlags.Move, "move", false, "remove source files after a successful transfer")
	cmd.Flags().BoolVar(&syncFlags.Resume, "resume", false, "skip files recorded as processed by a previous interrupted run")
	cmd.Flags().StringVarP(&syncFlags.Output, "output", "o", "", "output format: human, progress, json")

	// Logging flags
	cmd.Flags().StringVar(&syncFlags.LogFile, "log-file", "", "write logs to file in addition to the console")
	cmd.Flags().StringVar(&syncFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&syncFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	// A first interrupt stops scheduling new files but lets in-flight
	// transfers finish. Unregistering on cancellation restores default
	// signal handling, so a second interrupt terminates the process.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)

	opts, err := newSyncOptions(cfg, args[0], args[1])
	if err != nil {
		return err
	}

	// Create output formatter
	var formatter output.Formatter
	switch {
	case cfg.Output.Quiet:
		formatter = nil
	case cfg.Output.Format == "json":
		formatter = output.NewJSONFormatter()
	case cfg.Output.Format == "progress" || cfg.Output.Progress:
		formatter = output.NewProgressFormatter()
	default:
		formatter = output.NewHumanFormatter()
	}

	// Create logger
	logger, err := createLogger(cfg.Logging.File, cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	coordinator := sync.NewCoordinator(opts, logger, formatter)

	summary, err := coordinator.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	logger.Close()
	os.Exit(summary.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	level := logging.ParseLevel(logLevel)

	if logFile == "" {
		return logging.NewConsoleLogger(level), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logFile, format, level, true)
}
