// Package sync orchestrates a full media synchronization run: path
// validation, resumable state, bounded concurrent transfer, and
// thread-safe aggregation into a final report.
package sync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	gosync "sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"camsync/internal/platform"
	"camsync/pkg/dedup"
	"camsync/pkg/logging"
	"camsync/pkg/media"
	"camsync/pkg/models"
	"camsync/pkg/output"
	"camsync/pkg/planner"
	"camsync/pkg/transfer"
)

// Phase is the coordinator's position in the run state machine
type Phase string

const (
	PhaseValidating Phase = "validating"
	PhaseScanning   Phase = "scanning"
	PhaseGrouping   Phase = "grouping"
	PhaseProcessing Phase = "processing"
	PhaseFinalizing Phase = "finalizing"
)

// Free-space headroom below which validation warns (not fatal)
const lowSpaceThreshold = 1 << 30 // 1 GiB

// lockFileName guards a destination root against concurrent runs
const lockFileName = ".camsync.lock"

// Coordinator owns one sync run. Construct one per invocation; it is
// passed nothing global and holds the only shared mutable aggregate
// (counters plus resume state) behind a single mutex.
type Coordinator struct {
	opts      *models.SyncOptions
	scanner   *media.Scanner
	planner   *planner.Planner
	resolver  *dedup.Resolver
	worker    *transfer.Worker
	logger    logging.Logger
	formatter output.Formatter
	state     *State
	runLock   *flock.Flock

	// transferFn performs one file transfer; defaults to the worker
	transferFn func(context.Context, models.MediaFile, string) models.TransferOutcome

	// mu guards the counters and the resume state together. Updates
	// happen once per completed task in the completion handler; the
	// transfer I/O itself never holds the lock.
	mu        gosync.Mutex
	copied    int
	skipped   int
	failed    int
	bytes     int64
	completed int

	// fatal flips on the first disk-full failure and stops dispatch
	fatal atomic.Bool
}

// NewCoordinator wires up the engine for one run
func NewCoordinator(opts *models.SyncOptions, logger logging.Logger, formatter output.Formatter) *Coordinator {
	hasher := dedup.NewHasher(opts.BufferSize)
	c := &Coordinator{
		opts:      opts,
		scanner:   media.NewScanner(opts.SourcePath, logger),
		planner:   planner.New(opts.DestPath),
		resolver:  dedup.NewResolver(hasher),
		worker:    transfer.NewWorker(opts, hasher, logger),
		logger:    logger,
		formatter: formatter,
		state:     NewState(opts.DestPath),
	}
	c.transferFn = c.worker.Transfer
	return c
}

// SetTransferFunc overrides the per-file transfer.
// Used by tests that need to simulate transfer failures.
func (c *Coordinator) SetTransferFunc(fn func(context.Context, models.MediaFile, string) models.TransferOutcome) {
	if fn != nil {
		c.transferFn = fn
	}
}

// Scanner exposes the run's scanner so callers can swap the
// capture-time accessor (deterministic timestamps in tests)
func (c *Coordinator) Scanner() *media.Scanner {
	return c.scanner
}

// Run executes the state machine: Validating, Scanning, Grouping,
// Processing, Finalizing. The returned error is non-nil only for
// validation failures; run-level aborts and interruptions are reported
// through the summary status instead.
func (c *Coordinator) Run(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{
		OperationID: c.opts.ID,
		SourcePath:  c.opts.SourcePath,
		DestPath:    c.opts.DestPath,
		DryRun:      c.opts.DryRun,
		Status:      models.StatusCompleted,
		StartTime:   time.Now(),
	}

	c.logPhase(ctx, PhaseValidating)
	if err := c.validate(ctx); err != nil {
		summary.Status = models.StatusFailed
		c.finishTiming(summary)
		return summary, err
	}
	defer c.releaseLock()

	if c.opts.Resume {
		if err := c.state.Load(); err != nil {
			c.logger.Warn(ctx, "Could not load resume state, starting fresh", logging.Fields{
				"state_file": c.state.Path(),
				"error":      err.Error(),
			})
		} else if c.state.Len() > 0 {
			c.logger.Info(ctx, "Resuming previous sync", logging.Fields{
				"already_processed": c.state.Len(),
			})
		}
	}

	c.logPhase(ctx, PhaseScanning)
	files, err := c.scanner.Scan(ctx)
	if err != nil {
		// Only cancellation escapes the scanner
		summary.Status = models.StatusInterrupted
		c.finishTiming(summary)
		return summary, nil
	}
	summary.FilesDiscovered = len(files)

	c.logPhase(ctx, PhaseGrouping)
	groups := media.GroupFiles(files)
	tasks := c.planTasks(groups)

	c.logger.Info(ctx, "Starting file sync", logging.Fields{
		"operation_id": c.opts.ID,
		"source":       c.opts.SourcePath,
		"destination":  c.opts.DestPath,
		"workers":      c.opts.Workers,
		"total_files":  len(tasks),
		"dry_run":      c.opts.DryRun,
	})

	if c.formatter != nil {
		c.formatter.Start(nil, len(tasks), groups.TotalBytes(), c.opts.Workers)
	}

	if len(tasks) == 0 {
		c.logger.Info(ctx, "No media files found to process", nil)
	} else {
		c.logPhase(ctx, PhaseProcessing)
		c.process(ctx, tasks)
	}

	c.logPhase(ctx, PhaseFinalizing)
	c.finalize(ctx, summary)
	return summary, nil
}

// validate checks both roots before any work begins. Failure here
// terminates the run with no partial state written.
func (c *Coordinator) validate(ctx context.Context) error {
	for _, p := range []string{c.opts.SourcePath, c.opts.DestPath} {
		if err := platform.ValidatePath(p); err != nil {
			return err
		}
	}

	sourceAbs, err := filepath.Abs(c.opts.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}
	destAbs, err := filepath.Abs(c.opts.DestPath)
	if err != nil {
		return fmt.Errorf("failed to resolve destination path: %w", err)
	}

	if sourceAbs == destAbs {
		return fmt.Errorf("source and destination cannot be the same: %s", sourceAbs)
	}
	sep := string(filepath.Separator)
	if len(destAbs) > len(sourceAbs) && destAbs[:len(sourceAbs)+1] == sourceAbs+sep {
		return fmt.Errorf("destination cannot be inside source directory")
	}
	if len(sourceAbs) > len(destAbs) && sourceAbs[:len(destAbs)+1] == destAbs+sep {
		return fmt.Errorf("source cannot be inside destination directory")
	}

	info, err := os.Stat(sourceAbs)
	if err != nil {
		return fmt.Errorf("source path does not exist: %s", c.opts.SourcePath)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path is not a directory: %s", c.opts.SourcePath)
	}
	if err := probeReadable(sourceAbs); err != nil {
		return fmt.Errorf("source path not readable: %w", err)
	}

	// Destination checks touch the filesystem, so dry-run skips them
	if c.opts.DryRun {
		return nil
	}

	if err := os.MkdirAll(destAbs, 0755); err != nil {
		return fmt.Errorf("cannot create destination: %w", err)
	}

	// The lock doubles as a writability probe: if the lock file cannot
	// be created, neither can anything else
	c.runLock = flock.New(filepath.Join(destAbs, lockFileName))
	locked, err := c.runLock.TryLock()
	if err != nil {
		return fmt.Errorf("destination path not writable: %w", err)
	}
	if !locked {
		return fmt.Errorf("another sync is already writing to %s", c.opts.DestPath)
	}

	if free, err := platform.FreeSpace(destAbs); err == nil && free < lowSpaceThreshold {
		c.logger.Warn(ctx, "Low disk space on destination", logging.Fields{
			"free_bytes": free,
		})
	}

	return nil
}

func (c *Coordinator) logPhase(ctx context.Context, phase Phase) {
	c.logger.Debug(ctx, "Entering phase", logging.Fields{"phase": string(phase)})
}

func probeReadable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// planTasks fixes every destination folder, filename and sequence index
// before any worker starts. Buckets are visited in sorted key order and
// files in scan-discovery order, so the plan is reproducible for a
// fixed source tree.
func (c *Coordinator) planTasks(groups media.Groups) []*Task {
	tasks := make([]*Task, 0, groups.TotalFiles())
	for _, key := range groups.SortedKeys() {
		for i, f := range groups[key] {
			folder, name := c.planner.Plan(f, i+1)
			tasks = append(tasks, &Task{
				File:   f,
				Folder: folder,
				Name:   name,
				Index:  i + 1,
			})
		}
	}
	return tasks
}

// process dispatches tasks to a bounded worker pool. The task channel
// is unbuffered: on cancellation or a fatal abort the producer simply
// stops sending and only in-flight work drains.
func (c *Coordinator) process(ctx context.Context, tasks []*Task) {
	taskCh := make(chan *Task)
	var wg gosync.WaitGroup

	for i := 0; i < c.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				if c.fatal.Load() {
					continue
				}
				c.processTask(ctx, task, len(tasks))
			}
		}()
	}

dispatch:
	for _, task := range tasks {
		if c.fatal.Load() {
			break
		}
		select {
		case <-ctx.Done():
			c.logger.Warn(ctx, "Sync interrupted, draining in-flight transfers", nil)
			break dispatch
		case taskCh <- task:
		}
	}

	close(taskCh)
	wg.Wait()
}

// processTask runs the per-file workflow inside a worker: already-done
// check, folder creation, duplicate resolution, transfer, aggregation.
// Per-file I/O runs on a detached context so an interrupt never kills a
// transfer mid-write.
func (c *Coordinator) processTask(ctx context.Context, task *Task, total int) {
	fileCtx := context.WithoutCancel(ctx)

	c.mu.Lock()
	alreadyDone := c.state.Contains(task.File.SourcePath)
	c.mu.Unlock()

	if alreadyDone {
		c.recordOutcome(ctx, models.TransferOutcome{
			SourcePath: task.File.SourcePath,
			DestPath:   task.DestPath(),
			Kind:       models.OutcomeSkipped,
			Reason:     models.SkipAlreadyProcessed,
		}, total)
		return
	}

	if !c.opts.DryRun {
		if err := c.planner.EnsureFolder(task.Folder); err != nil {
			c.recordOutcome(ctx, models.TransferOutcome{
				SourcePath: task.File.SourcePath,
				DestPath:   task.DestPath(),
				Kind:       models.OutcomeFailed,
				Err:        err,
			}, total)
			return
		}
	}

	resolution, err := c.resolver.Resolve(fileCtx, task.DestPath(), task.File.SourcePath)
	if err != nil {
		c.recordOutcome(ctx, models.TransferOutcome{
			SourcePath: task.File.SourcePath,
			DestPath:   task.DestPath(),
			Kind:       models.OutcomeFailed,
			Err:        err,
		}, total)
		return
	}

	if resolution.Duplicate {
		c.recordOutcome(ctx, models.TransferOutcome{
			SourcePath: task.File.SourcePath,
			DestPath:   resolution.DestPath,
			Kind:       models.OutcomeSkipped,
			Reason:     models.SkipDuplicateContent,
		}, total)
		return
	}

	outcome := c.transferFn(fileCtx, task.File, resolution.DestPath)
	c.recordOutcome(ctx, outcome, total)
}

// recordOutcome folds one completed task into the shared counters and
// the persisted resume state, both under the single coordinator mutex,
// then reports it to the log and formatter.
func (c *Coordinator) recordOutcome(ctx context.Context, outcome models.TransferOutcome, total int) {
	c.mu.Lock()
	c.completed++
	index := c.completed

	switch outcome.Kind {
	case models.OutcomeCopied, models.OutcomeMoved:
		c.copied++
		c.bytes += outcome.Bytes
		if !c.opts.DryRun {
			c.state.MarkProcessed(outcome.SourcePath)
			if err := c.state.Save(); err != nil {
				c.logger.Warn(ctx, "Could not save resume state", logging.Fields{
					"error": err.Error(),
				})
			}
		}
	case models.OutcomeSkipped:
		c.skipped++
		if !c.opts.DryRun && outcome.Reason == models.SkipDuplicateContent {
			c.state.MarkProcessed(outcome.SourcePath)
			if err := c.state.Save(); err != nil {
				c.logger.Warn(ctx, "Could not save resume state", logging.Fields{
					"error": err.Error(),
				})
			}
		}
	case models.OutcomeFailed:
		c.failed++
	}
	c.mu.Unlock()

	c.logOutcome(ctx, outcome)

	if c.formatter != nil {
		c.formatter.Action(output.ActionUpdate{
			Outcome: outcome,
			Index:   index,
			Total:   total,
		})
	}

	if transfer.IsFatal(outcome) {
		if c.fatal.CompareAndSwap(false, true) {
			c.logger.Error(ctx, "Disk full, aborting sync", outcome.Err, logging.Fields{
				"last_file": outcome.SourcePath,
			})
		}
	}
}

func (c *Coordinator) logOutcome(ctx context.Context, outcome models.TransferOutcome) {
	fields := logging.Fields{
		"source":      outcome.SourcePath,
		"destination": outcome.DestPath,
	}

	switch outcome.Kind {
	case models.OutcomeCopied:
		fields["bytes"] = outcome.Bytes
		if c.opts.DryRun {
			c.logger.Info(ctx, "[dry run] Would copy", fields)
		} else {
			c.logger.Info(ctx, "Copied", fields)
		}
	case models.OutcomeMoved:
		fields["bytes"] = outcome.Bytes
		if c.opts.DryRun {
			c.logger.Info(ctx, "[dry run] Would move", fields)
		} else {
			c.logger.Info(ctx, "Moved", fields)
		}
	case models.OutcomeSkipped:
		fields["reason"] = string(outcome.Reason)
		c.logger.Info(ctx, "Skipped", fields)
	case models.OutcomeFailed:
		c.logger.Error(ctx, "Failed", outcome.Err, fields)
	}
}

// finalize computes the summary, cleans up state on a completed run and
// leaves it intact on abort or interruption
func (c *Coordinator) finalize(ctx context.Context, summary *models.RunSummary) {
	c.mu.Lock()
	summary.FilesCopied = c.copied
	summary.FilesSkipped = c.skipped
	summary.FilesFailed = c.failed
	summary.TotalBytes = c.bytes
	c.mu.Unlock()

	switch {
	case c.fatal.Load():
		summary.Status = models.StatusAborted
	case ctx.Err() != nil:
		summary.Status = models.StatusInterrupted
	default:
		summary.Status = models.StatusCompleted
	}

	if summary.Status == models.StatusCompleted && !c.opts.DryRun {
		if err := c.state.Clear(); err != nil {
			c.logger.Warn(ctx, "Could not remove state file", logging.Fields{
				"state_file": c.state.Path(),
				"error":      err.Error(),
			})
		}
	}

	c.finishTiming(summary)

	c.logger.Info(ctx, "Sync finished", logging.Fields{
		"status":      string(summary.Status),
		"copied":      summary.FilesCopied,
		"skipped":     summary.FilesSkipped,
		"failed":      summary.FilesFailed,
		"total_bytes": summary.TotalBytes,
		"duration":    summary.Duration.String(),
	})

	if c.formatter != nil {
		c.formatter.Complete(summary)
	}
}

func (c *Coordinator) finishTiming(summary *models.RunSummary) {
	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)
}

func (c *Coordinator) releaseLock() {
	if c.runLock != nil {
		c.runLock.Unlock()
		c.runLock = nil
	}
}
