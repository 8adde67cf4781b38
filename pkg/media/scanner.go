package media

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"camsync/pkg/logging"
	"camsync/pkg/models"
)

// CaptureTime returns the best-available timestamp for when the file at
// path was recorded: creation time where the filesystem exposes it,
// otherwise modification time.
func CaptureTime(info os.FileInfo) time.Time {
	return captureTimestamp(info)
}

// Scanner recursively walks a source tree and yields every file whose
// extension matches a known media type, annotated with its capture
// timestamp. Unreadable subtrees are logged and skipped; scanning
// continues with their siblings.
type Scanner struct {
	root        string
	logger      logging.Logger
	captureTime func(os.FileInfo) time.Time
}

// NewScanner creates a scanner rooted at the given directory
func NewScanner(root string, logger logging.Logger) *Scanner {
	return &Scanner{
		root:        root,
		logger:      logger,
		captureTime: captureTimestamp,
	}
}

// SetCaptureTimeFunc overrides the capture-time accessor.
// Used by tests that need deterministic timestamps.
func (s *Scanner) SetCaptureTimeFunc(fn func(os.FileInfo) time.Time) {
	if fn != nil {
		s.captureTime = fn
	}
}

// Scan walks the tree and returns discovered media files in directory
// listing order. Entries within a directory come back sorted by name,
// so the result is reproducible for a fixed tree regardless of worker
// concurrency later in the run.
func (s *Scanner) Scan(ctx context.Context) ([]models.MediaFile, error) {
	var files []models.MediaFile
	if err := s.scanDir(ctx, s.root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) scanDir(ctx context.Context, dir string, files *[]models.MediaFile) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission denied or similar: skip this subtree, keep scanning
		s.logger.Warn(ctx, "Skipping unreadable directory", logging.Fields{
			"dir":   dir,
			"error": err.Error(),
		})
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Symlinks are not followed
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		if entry.IsDir() {
			if err := s.scanDir(ctx, path, files); err != nil {
				return err
			}
			continue
		}

		mediaType, ok := models.MediaTypeForPath(path)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Capture time cannot be determined; drop the file, not the run
			s.logger.Warn(ctx, "Could not determine capture time, dropping file", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		*files = append(*files, models.MediaFile{
			SourcePath:  path,
			CaptureTime: s.captureTime(info),
			Type:        mediaType,
			Size:        info.Size(),
		})
	}

	return nil
}
