// Package planner computes deterministic destination folders and
// filenames for date-partitioned media trees.
package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"camsync/pkg/media"
	"camsync/pkg/models"
)

// Planner maps (capture date, media type, sequence index) to a
// destination folder and filename under a fixed root
type Planner struct {
	destRoot string
}

// New creates a planner writing under destRoot
func New(destRoot string) *Planner {
	return &Planner{destRoot: destRoot}
}

// OrdinalDay returns the day-of-month folder name with its English
// ordinal suffix: 1 -> "1st", 22 -> "22nd", 11..13 -> "th"
func OrdinalDay(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}

// FolderFor returns the destination folder for a date and media type:
// {root}/{year}/{month name}/{day ordinal}, with photos nested one
// level deeper under photos/
func (p *Planner) FolderFor(date media.Date, mediaType models.MediaType) string {
	folder := filepath.Join(
		p.destRoot,
		strconv.Itoa(date.Year),
		date.Month.String(),
		OrdinalDay(date.Day),
	)
	if mediaType == models.MediaPhoto {
		folder = filepath.Join(folder, "photos")
	}
	return folder
}

// FileName returns the standardized destination filename:
// {type}-{index:03d}-{yyyy-mm-dd}{ext}. The extension is the source
// file's, case and all; it is never coerced to a fixed value.
func (p *Planner) FileName(mediaType models.MediaType, index int, date media.Date, ext string) string {
	return fmt.Sprintf("%s-%03d-%s%s", mediaType, index, date, ext)
}

// Plan computes the destination folder and filename for one file with
// its per-(date,type) sequence index
func (p *Planner) Plan(f models.MediaFile, index int) (folder, name string) {
	date := media.DateOf(f.CaptureTime)
	folder = p.FolderFor(date, f.Type)
	name = p.FileName(f.Type, index, date, f.Ext())
	return folder, name
}

// EnsureFolder creates the folder and any missing parents.
// It never errors when the folder already exists.
func (p *Planner) EnsureFolder(folder string) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("failed to create destination folder: %w", err)
	}
	return nil
}
