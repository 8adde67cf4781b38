package models

import (
	"runtime"
	"time"
)

// SyncOptions represents one sync run's configuration
type SyncOptions struct {
	ID         string
	SourcePath string
	DestPath   string
	Workers    int
	BufferSize int
	DryRun     bool
	Verify     bool
	Move       bool
	Resume     bool
	CreatedAt  time.Time
}

// DefaultWorkers returns the default worker pool size: min(4, available cores)
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Validate checks if the options are valid
func (o *SyncOptions) Validate() error {
	if o.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if o.DestPath == "" {
		return &ValidationError{Field: "DestPath", Message: "destination path is required"}
	}
	if o.Workers < 1 {
		return &ValidationError{Field: "Workers", Message: "workers must be at least 1"}
	}
	if o.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
