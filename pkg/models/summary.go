package models

import (
	"time"
)

// RunStatus represents the overall result of a sync run
type RunStatus string

const (
	// StatusCompleted indicates every discovered file was accounted for
	StatusCompleted RunStatus = "completed"
	// StatusFailed indicates validation or an unrecoverable top-level error
	StatusFailed RunStatus = "failed"
	// StatusAborted indicates a fatal disk-full abort; resume state was kept
	StatusAborted RunStatus = "aborted"
	// StatusInterrupted indicates a user cancel; resume state was kept
	StatusInterrupted RunStatus = "interrupted"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusCompleted:
		return 0
	case StatusFailed:
		return 1
	case StatusAborted:
		return 2
	case StatusInterrupted:
		return 3
	default:
		return 1
	}
}

// RunSummary is the aggregate report produced once at the end of a run
// from the coordinator's thread-safe counters
type RunSummary struct {
	OperationID string
	SourcePath  string
	DestPath    string
	DryRun      bool
	Status      RunStatus

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Counters
	FilesDiscovered int
	FilesCopied     int
	FilesSkipped    int
	FilesFailed     int
	TotalBytes      int64
}

// AverageSpeed returns the mean transfer rate in bytes per second
func (s *RunSummary) AverageSpeed() float64 {
	secs := s.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.TotalBytes) / secs
}
