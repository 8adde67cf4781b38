// Package transfer performs single-file copy and move operations with
// metadata preservation, optional post-transfer verification, and
// disk-full escalation.
package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"camsync/internal/platform"
	"camsync/pkg/dedup"
	"camsync/pkg/logging"
	"camsync/pkg/models"
)

// Worker transfers one media file at a time. Safe for concurrent use;
// each call operates only on its own file pair.
type Worker struct {
	opts       *models.SyncOptions
	hasher     *dedup.Hasher
	logger     logging.Logger
	bufferPool *sync.Pool
}

// NewWorker creates a transfer worker for one run's options
func NewWorker(opts *models.SyncOptions, hasher *dedup.Hasher, logger logging.Logger) *Worker {
	size := opts.BufferSize
	if size < 4096 {
		size = 4096
	}
	return &Worker{
		opts:   opts,
		hasher: hasher,
		logger: logger,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Transfer copies (or moves) file to destPath and reports the outcome.
// All filesystem errors are folded into a Failed outcome for this file
// only; the caller inspects the outcome error for disk exhaustion and
// escalates that one class to a run-level abort.
func (w *Worker) Transfer(ctx context.Context, file models.MediaFile, destPath string) models.TransferOutcome {
	kind := models.OutcomeCopied
	if w.opts.Move {
		kind = models.OutcomeMoved
	}

	outcome := models.TransferOutcome{
		SourcePath: file.SourcePath,
		DestPath:   destPath,
		Kind:       kind,
	}

	if w.opts.DryRun {
		// No I/O; the outcome is reported as if the transfer succeeded
		outcome.Bytes = file.Size
		return outcome
	}

	// A move consumes the source, so take its hash up front when the
	// transfer will be verified
	var sourceHash string
	if w.opts.Verify && w.opts.Move {
		h, err := w.hasher.Sum(ctx, file.SourcePath)
		if err != nil {
			return w.failed(outcome, err)
		}
		sourceHash = h
	}

	var err error
	if w.opts.Move {
		err = w.moveFile(file.SourcePath, destPath)
	} else {
		err = w.copyFile(file.SourcePath, destPath)
	}
	if err != nil {
		return w.failed(outcome, err)
	}

	if w.opts.Verify {
		if err := w.verify(ctx, file.SourcePath, destPath, sourceHash); err != nil {
			return w.failed(outcome, err)
		}
	}

	outcome.Bytes = file.Size
	return outcome
}

func (w *Worker) failed(outcome models.TransferOutcome, err error) models.TransferOutcome {
	outcome.Kind = models.OutcomeFailed
	outcome.Bytes = 0
	outcome.Err = err
	return outcome
}

// copyFile copies src to dst preserving modification time and
// permissions. The copy is never interrupted mid-write; cancellation
// only stops new work from being scheduled.
func (w *Worker) copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	bufPtr := w.bufferPool.Get().(*[]byte)
	written, err := io.CopyBuffer(out, in, *bufPtr)
	w.bufferPool.Put(bufPtr)

	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A partial destination is worse than none; remove it so a
		// later run plans this file cleanly
		os.Remove(dst)
		return fmt.Errorf("failed to write destination: %w", err)
	}
	if written != info.Size() {
		os.Remove(dst)
		return fmt.Errorf("incomplete write: expected %d bytes, wrote %d", info.Size(), written)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	return nil
}

// moveFile renames src to dst, falling back to copy-then-delete when
// the paths live on different filesystems
func (w *Worker) moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := w.copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after move: %w", err)
	}
	return nil
}

// verify recomputes hashes after the transfer. For a copy the source is
// rehashed and compared against the destination; for a move the
// destination is compared against the hash taken before the source was
// consumed. A mismatched copy is deleted so the failure is visible on
// the next run; a mismatched move keeps the destination because it is
// the only remaining copy of the data.
func (w *Worker) verify(ctx context.Context, src, dst, sourceHash string) error {
	if sourceHash == "" {
		h, err := w.hasher.Sum(ctx, src)
		if err != nil {
			return fmt.Errorf("verification failed to hash source: %w", err)
		}
		sourceHash = h
	}

	destHash, err := w.hasher.Sum(ctx, dst)
	if err != nil {
		return fmt.Errorf("verification failed to hash destination: %w", err)
	}

	if destHash != sourceHash {
		if !w.opts.Move {
			os.Remove(dst)
		}
		return fmt.Errorf("verification failed: hash mismatch for %s", dst)
	}

	return nil
}

// IsFatal reports whether a failed outcome must abort the whole run
// rather than just this file
func IsFatal(outcome models.TransferOutcome) bool {
	return outcome.Kind == models.OutcomeFailed && platform.IsDiskFull(outcome.Err)
}
