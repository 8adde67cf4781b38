package output

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"camsync/pkg/models"
)

// JSONFormatter emits a single JSON document at the end of the run,
// suitable for piping into other tools
type JSONFormatter struct {
	mu      sync.Mutex
	writer  io.Writer
	actions []jsonAction
}

type jsonAction struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Result      string `json:"result"`
	Reason      string `json:"reason,omitempty"`
	Bytes       int64  `json:"bytes,omitempty"`
	Error       string `json:"error,omitempty"`
}

type jsonReport struct {
	OperationID     string       `json:"operation_id"`
	Source          string       `json:"source"`
	Destination     string       `json:"destination"`
	DryRun          bool         `json:"dry_run"`
	Status          string       `json:"status"`
	FilesDiscovered int          `json:"files_discovered"`
	FilesCopied     int          `json:"files_copied"`
	FilesSkipped    int          `json:"files_skipped"`
	FilesFailed     int          `json:"files_failed"`
	TotalBytes      int64        `json:"total_bytes"`
	DurationSeconds float64      `json:"duration_seconds"`
	Actions         []jsonAction `json:"actions"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64, workers int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.mu.Lock()
	f.writer = writer
	f.actions = make([]jsonAction, 0, totalFiles)
	f.mu.Unlock()
	return nil
}

// Action records one completed file outcome
func (f *JSONFormatter) Action(update ActionUpdate) error {
	o := update.Outcome
	action := jsonAction{
		Source:      o.SourcePath,
		Destination: o.DestPath,
		Result:      string(o.Kind),
		Reason:      string(o.Reason),
		Bytes:       o.Bytes,
	}
	if o.Err != nil {
		action.Error = o.Err.Error()
	}

	f.mu.Lock()
	f.actions = append(f.actions, action)
	f.mu.Unlock()
	return nil
}

// Complete writes the report document
func (f *JSONFormatter) Complete(summary *models.RunSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writer == nil {
		f.writer = os.Stdout
	}

	report := jsonReport{
		OperationID:     summary.OperationID,
		Source:          summary.SourcePath,
		Destination:     summary.DestPath,
		DryRun:          summary.DryRun,
		Status:          string(summary.Status),
		FilesDiscovered: summary.FilesDiscovered,
		FilesCopied:     summary.FilesCopied,
		FilesSkipped:    summary.FilesSkipped,
		FilesFailed:     summary.FilesFailed,
		TotalBytes:      summary.TotalBytes,
		DurationSeconds: summary.Duration.Round(time.Millisecond).Seconds(),
		Actions:         f.actions,
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
