package sync

import (
	"path/filepath"

	"camsync/pkg/models"
)

// Task is one planned transfer. Folder, name and sequence index are all
// fixed before any worker starts, so completion order never affects the
// final tree.
type Task struct {
	File   models.MediaFile
	Folder string
	Name   string
	Index  int // per-(date,type) sequence index, 1-based
}

// DestPath returns the planned destination before duplicate resolution
func (t *Task) DestPath() string {
	return filepath.Join(t.Folder, t.Name)
}
