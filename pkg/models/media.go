package models

import (
	"path/filepath"
	"strings"
	"time"
)

// MediaType classifies a media file as video or photo
type MediaType string

const (
	// MediaVideo is a video file (mp4, mov, avi, mkv, m4v, 3gp)
	MediaVideo MediaType = "video"
	// MediaPhoto is a photo file (jpg, jpeg, png, tiff, tif, heic, heif)
	MediaPhoto MediaType = "photo"
)

// Extension tables used for classification. Matching is case-insensitive;
// the emitted filename always keeps the source extension's original case.
var (
	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true,
		".mkv": true, ".m4v": true, ".3gp": true,
	}
	photoExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".tiff": true,
		".tif": true, ".heic": true, ".heif": true,
	}
)

// MediaTypeForPath classifies a path by its extension.
// Returns false if the extension is not a known media type.
func MediaTypeForPath(path string) (MediaType, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExtensions[ext]:
		return MediaVideo, true
	case photoExtensions[ext]:
		return MediaPhoto, true
	default:
		return "", false
	}
}

// MediaFile is one discovered source file, immutable once created by the scanner
type MediaFile struct {
	// SourcePath is the absolute path of the file in the source tree
	SourcePath string

	// CaptureTime is the best-available timestamp for when the file was
	// recorded (creation time where the filesystem exposes it, else mtime)
	CaptureTime time.Time

	// Type is the media classification derived from the extension
	Type MediaType

	// Size is the file size in bytes at scan time
	Size int64
}

// Ext returns the file's extension with its original case preserved
func (f MediaFile) Ext() string {
	return filepath.Ext(f.SourcePath)
}
