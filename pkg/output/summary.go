package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"camsync/pkg/models"
)

// formatBytes formats a byte count as a human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// renderSummary writes the final summary block shared by the human and
// progress formatters
func renderSummary(w io.Writer, summary *models.RunSummary) {
	title := "Sync complete"
	switch summary.Status {
	case models.StatusAborted:
		title = "Sync aborted (disk full) - re-run with --resume"
	case models.StatusInterrupted:
		title = "Sync interrupted - re-run with --resume"
	case models.StatusFailed:
		title = "Sync failed"
	}
	if summary.DryRun {
		title = "[dry run] " + title
	}

	fmt.Fprintf(w, "\n%s\n", title)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Files discovered", summary.FilesDiscovered},
		{"Files copied", summary.FilesCopied},
		{"Files skipped", summary.FilesSkipped},
		{"Files failed", summary.FilesFailed},
		{"Data transferred", formatBytes(summary.TotalBytes)},
		{"Duration", summary.Duration.Round(time.Millisecond)},
		{"Average speed", fmt.Sprintf("%.2f MB/s", summary.AverageSpeed()/(1024*1024))},
	})
	t.Render()
}
