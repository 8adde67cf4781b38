package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"camsync/pkg/models"
)

// HumanFormatter prints one line per file action plus a summary table
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64, workers int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.totalFiles = totalFiles

	fmt.Fprintf(writer, "Syncing %d files (%s) with %d workers\n",
		totalFiles, formatBytes(totalBytes), workers)
	return nil
}

// Action prints one completed file outcome
func (f *HumanFormatter) Action(update ActionUpdate) error {
	o := update.Outcome
	name := filepath.Base(o.SourcePath)

	switch o.Kind {
	case models.OutcomeCopied:
		fmt.Fprintf(f.writer, "[%d/%d] Copied  %s -> %s (%s)\n",
			update.Index, update.Total, name, filepath.Base(o.DestPath), formatBytes(o.Bytes))
	case models.OutcomeMoved:
		fmt.Fprintf(f.writer, "[%d/%d] Moved   %s -> %s (%s)\n",
			update.Index, update.Total, name, filepath.Base(o.DestPath), formatBytes(o.Bytes))
	case models.OutcomeSkipped:
		fmt.Fprintf(f.writer, "[%d/%d] Skipped %s (%s)\n",
			update.Index, update.Total, name, o.Reason)
	case models.OutcomeFailed:
		fmt.Fprintf(f.writer, "[%d/%d] Failed  %s: %v\n",
			update.Index, update.Total, name, o.Err)
	}
	return nil
}

// Complete prints the final summary
func (f *HumanFormatter) Complete(summary *models.RunSummary) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	renderSummary(f.writer, summary)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
