package transfer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"camsync/pkg/dedup"
	"camsync/pkg/logging"
	"camsync/pkg/models"
)

func newTestWorker(opts *models.SyncOptions) *Worker {
	if opts.BufferSize == 0 {
		opts.BufferSize = 4096
	}
	return NewWorker(opts, dedup.NewHasher(opts.BufferSize), logging.NewNullLogger())
}

func sourceFile(t *testing.T, dir string, content []byte, modTime time.Time) models.MediaFile {
	t.Helper()
	path := filepath.Join(dir, "clip.mov")
	if err := os.WriteFile(path, content, 0640); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("failed to set mod time: %v", err)
	}
	return models.MediaFile{
		SourcePath:  path,
		Type:        models.MediaVideo,
		Size:        int64(len(content)),
		CaptureTime: modTime,
	}
}

func TestTransferCopy(t *testing.T) {
	dir := t.TempDir()
	modTime := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local)
	file := sourceFile(t, dir, []byte("clip bytes"), modTime)
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")

	w := newTestWorker(&models.SyncOptions{})
	outcome := w.Transfer(context.Background(), file, dest)

	if outcome.Kind != models.OutcomeCopied {
		t.Fatalf("Kind = %s, want copied (err: %v)", outcome.Kind, outcome.Err)
	}
	if outcome.Bytes != file.Size {
		t.Errorf("Bytes = %d, want %d", outcome.Bytes, file.Size)
	}

	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if !bytes.Equal(content, []byte("clip bytes")) {
		t.Errorf("destination content = %q, want %q", content, "clip bytes")
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("failed to stat destination: %v", err)
	}
	if !info.ModTime().Truncate(time.Second).Equal(modTime.Truncate(time.Second)) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), modTime)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("Mode = %v, want 0640", info.Mode().Perm())
	}

	// Source untouched on copy
	if _, err := os.Stat(file.SourcePath); err != nil {
		t.Error("source should still exist after a copy")
	}
}

func TestTransferMove(t *testing.T) {
	dir := t.TempDir()
	file := sourceFile(t, dir, []byte("clip bytes"), time.Now())
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")

	w := newTestWorker(&models.SyncOptions{Move: true})
	outcome := w.Transfer(context.Background(), file, dest)

	if outcome.Kind != models.OutcomeMoved {
		t.Fatalf("Kind = %s, want moved (err: %v)", outcome.Kind, outcome.Err)
	}
	if _, err := os.Stat(file.SourcePath); !os.IsNotExist(err) {
		t.Error("source should be removed after a move")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Error("destination should exist after a move")
	}
}

func TestTransferDryRun(t *testing.T) {
	dir := t.TempDir()
	file := sourceFile(t, dir, []byte("clip bytes"), time.Now())
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")

	w := newTestWorker(&models.SyncOptions{DryRun: true})
	outcome := w.Transfer(context.Background(), file, dest)

	if outcome.Kind != models.OutcomeCopied {
		t.Fatalf("Kind = %s, want copied", outcome.Kind)
	}
	if outcome.Bytes != file.Size {
		t.Errorf("Bytes = %d, want %d", outcome.Bytes, file.Size)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("dry run must not write the destination")
	}
}

func TestTransferVerifyCopy(t *testing.T) {
	dir := t.TempDir()
	file := sourceFile(t, dir, []byte("clip bytes"), time.Now())
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")

	w := newTestWorker(&models.SyncOptions{Verify: true})
	outcome := w.Transfer(context.Background(), file, dest)

	if outcome.Kind != models.OutcomeCopied {
		t.Fatalf("Kind = %s, want copied (err: %v)", outcome.Kind, outcome.Err)
	}
}

func TestTransferVerifyMove(t *testing.T) {
	dir := t.TempDir()
	file := sourceFile(t, dir, []byte("clip bytes"), time.Now())
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")

	w := newTestWorker(&models.SyncOptions{Move: true, Verify: true})
	outcome := w.Transfer(context.Background(), file, dest)

	if outcome.Kind != models.OutcomeMoved {
		t.Fatalf("Kind = %s, want moved (err: %v)", outcome.Kind, outcome.Err)
	}
}

func TestVerifyMismatchDeletesCopiedDestination(t *testing.T) {
	dir := t.TempDir()
	file := sourceFile(t, dir, []byte("original bytes"), time.Now())
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")
	if err := os.WriteFile(dest, []byte("corrupted bytes"), 0644); err != nil {
		t.Fatalf("failed to write destination: %v", err)
	}

	w := newTestWorker(&models.SyncOptions{Verify: true})
	if err := w.verify(context.Background(), file.SourcePath, dest, ""); err == nil {
		t.Fatal("verify() should fail on a hash mismatch")
	}

	// A mismatched copy must not be left behind
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("mismatched copied destination should be deleted")
	}
	if _, err := os.Stat(file.SourcePath); err != nil {
		t.Error("source should be untouched")
	}
}

func TestVerifyMismatchKeepsMovedDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")
	if err := os.WriteFile(dest, []byte("moved bytes"), 0644); err != nil {
		t.Fatalf("failed to write destination: %v", err)
	}

	// The pre-move hash disagrees with the destination content
	w := newTestWorker(&models.SyncOptions{Move: true, Verify: true})
	err := w.verify(context.Background(), filepath.Join(dir, "gone.mov"), dest, "0123456789abcdef0123456789abcdef")
	if err == nil {
		t.Fatal("verify() should fail on a hash mismatch")
	}

	// After a move the destination is the only remaining copy
	if _, statErr := os.Stat(dest); statErr != nil {
		t.Error("mismatched moved destination should be kept")
	}
}

func TestTransferMissingSource(t *testing.T) {
	dir := t.TempDir()
	file := models.MediaFile{
		SourcePath: filepath.Join(dir, "missing.mov"),
		Type:       models.MediaVideo,
		Size:       10,
	}
	dest := filepath.Join(dir, "video-001-2024-06-01.mov")

	w := newTestWorker(&models.SyncOptions{})
	outcome := w.Transfer(context.Background(), file, dest)

	if outcome.Kind != models.OutcomeFailed {
		t.Fatalf("Kind = %s, want failed", outcome.Kind)
	}
	if outcome.Err == nil {
		t.Error("failed outcome should carry an error")
	}
	if outcome.Bytes != 0 {
		t.Errorf("Bytes = %d, want 0 on failure", outcome.Bytes)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("no destination file should be left behind")
	}
}

func TestTransferUnwritableDestination(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	file := sourceFile(t, dir, []byte("clip bytes"), time.Now())

	destDir := filepath.Join(dir, "readonly")
	if err := os.Mkdir(destDir, 0500); err != nil {
		t.Fatalf("failed to create read-only dir: %v", err)
	}

	w := newTestWorker(&models.SyncOptions{})
	outcome := w.Transfer(context.Background(), file, filepath.Join(destDir, "out.mov"))

	if outcome.Kind != models.OutcomeFailed {
		t.Fatalf("Kind = %s, want failed", outcome.Kind)
	}
}

func TestIsFatal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("errno-based disk-full classification differs on windows")
	}

	tests := []struct {
		name    string
		outcome models.TransferOutcome
		want    bool
	}{
		{
			name:    "disk full failure",
			outcome: models.TransferOutcome{Kind: models.OutcomeFailed, Err: syscall.ENOSPC},
			want:    true,
		},
		{
			name:    "ordinary failure",
			outcome: models.TransferOutcome{Kind: models.OutcomeFailed, Err: syscall.EACCES},
			want:    false,
		},
		{
			name:    "successful copy",
			outcome: models.TransferOutcome{Kind: models.OutcomeCopied},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.outcome); got != tt.want {
				t.Errorf("IsFatal() = %t, want %t", got, tt.want)
			}
		})
	}
}
