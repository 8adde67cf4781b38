package models

// OutcomeKind tags what happened to a single file
type OutcomeKind string

const (
	// OutcomeCopied indicates the file was copied to its destination
	OutcomeCopied OutcomeKind = "copied"
	// OutcomeMoved indicates the file was moved (source removed on success)
	OutcomeMoved OutcomeKind = "moved"
	// OutcomeSkipped indicates no transfer was needed
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeFailed indicates the transfer failed for this file only
	OutcomeFailed OutcomeKind = "failed"
)

// SkipReason explains a skipped outcome
type SkipReason string

const (
	// SkipAlreadyProcessed means the file was recorded in a prior run's state
	SkipAlreadyProcessed SkipReason = "already-processed"
	// SkipDuplicateContent means the destination already holds identical bytes
	SkipDuplicateContent SkipReason = "duplicate-content"
)

// TransferOutcome is the per-file result reported by a transfer worker.
// Every discovered file is accounted for in exactly one outcome by run
// end, except when a disk-full abort halts accounting mid-run.
type TransferOutcome struct {
	SourcePath string
	DestPath   string
	Kind       OutcomeKind
	Reason     SkipReason // set only when Kind == OutcomeSkipped
	Bytes      int64      // bytes transferred (zero for skips and failures)
	Err        error      // set only when Kind == OutcomeFailed
}
