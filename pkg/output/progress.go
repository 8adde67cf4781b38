package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"camsync/pkg/models"
)

// ProgressFormatter renders a progress bar across file completions.
// Failures are still printed as individual lines above the bar.
type ProgressFormatter struct {
	mu     sync.Mutex
	writer io.Writer
	bar    *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start initializes the progress bar over the total file count
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64, workers int) error {
	if writer == nil {
		writer = os.Stdout
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.writer = writer
	f.bar = pb.New(totalFiles).SetWriter(writer).Set(pb.CleanOnFinish, true)
	f.bar.Start()
	return nil
}

// Action advances the bar by one completed file
func (f *ProgressFormatter) Action(update ActionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if update.Outcome.Kind == models.OutcomeFailed {
		f.bar.Write() // keep the bar intact below the error line
	}
	f.bar.Increment()
	return nil
}

// Complete stops the bar and prints the final summary
func (f *ProgressFormatter) Complete(summary *models.RunSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil {
		f.bar.Finish()
	}
	if f.writer == nil {
		f.writer = os.Stdout
	}
	renderSummary(f.writer, summary)
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
