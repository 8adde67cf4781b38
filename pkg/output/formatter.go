// Package output renders per-file actions and the final run summary.
package output

import (
	"io"

	"camsync/pkg/models"
)

// ActionUpdate reports one completed file outcome
type ActionUpdate struct {
	Outcome models.TransferOutcome
	Index   int // completion sequence, 1-based
	Total   int
}

// Formatter defines the interface for run output.
// Implementations include human-readable, progress-bar and JSON output.
type Formatter interface {
	// Start initializes the formatter for a new run. A nil writer
	// selects stdout.
	Start(writer io.Writer, totalFiles int, totalBytes int64, workers int) error

	// Action reports one completed file outcome
	Action(update ActionUpdate) error

	// Complete finalizes output and displays the run summary
	Complete(summary *models.RunSummary) error

	// Name returns the formatter name
	Name() string
}
