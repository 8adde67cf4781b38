package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// StateFileName is the resume-state document kept under the destination
// root. Its presence after a run means the run did not complete.
const StateFileName = ".camsync_state.json"

// State is the durable record of source paths already transferred.
// Loaded at start when resume is requested, rewritten after every
// successful or skipped transfer, deleted on a fully successful run.
//
// Not safe for concurrent use on its own; the coordinator guards it
// with the same mutex that protects the run counters.
type State struct {
	path      string
	processed map[string]bool
}

type stateDocument struct {
	ProcessedFiles []string `json:"processed_files"`
}

// NewState creates an empty state persisted under destRoot
func NewState(destRoot string) *State {
	return &State{
		path:      filepath.Join(destRoot, StateFileName),
		processed: make(map[string]bool),
	}
}

// Path returns the state file location
func (s *State) Path() string {
	return s.path
}

// Load reads the state file. A missing file yields an empty state; a
// corrupt one is reported so the caller can warn and start fresh.
func (s *State) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	for _, p := range doc.ProcessedFiles {
		s.processed[p] = true
	}
	return nil
}

// Contains reports whether a source path was already transferred
func (s *State) Contains(sourcePath string) bool {
	return s.processed[sourcePath]
}

// MarkProcessed records a source path as durably transferred
func (s *State) MarkProcessed(sourcePath string) {
	s.processed[sourcePath] = true
}

// Len returns the number of recorded paths
func (s *State) Len() int {
	return len(s.processed)
}

// Save rewrites the state file atomically (temp file plus rename), so a
// crash mid-write never leaves a truncated document behind
func (s *State) Save() error {
	paths := make([]string, 0, len(s.processed))
	for p := range s.processed {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	data, err := json.Marshal(stateDocument{ProcessedFiles: paths})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize state file: %w", err)
	}
	return nil
}

// Clear removes the state file; a clean completion leaves no state behind
func (s *State) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
