package media

import (
	"fmt"
	"sort"
	"time"

	"camsync/pkg/models"
)

// Date is a calendar date used as part of a grouping key
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date from a timestamp
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as yyyy-mm-dd
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// GroupKey identifies one filename-numbering bucket: all files of one
// media type captured on one calendar date
type GroupKey struct {
	Date Date
	Type models.MediaType
}

// Groups maps each (capture date, media type) bucket to its files in
// scan-discovery order. Built once per run, never mutated afterwards;
// the position of a file in its bucket fixes its filename index.
type Groups map[GroupKey][]models.MediaFile

// GroupFiles buckets discovered files, preserving discovery order
// within each bucket
func GroupFiles(files []models.MediaFile) Groups {
	groups := make(Groups)
	for _, f := range files {
		key := GroupKey{Date: DateOf(f.CaptureTime), Type: f.Type}
		groups[key] = append(groups[key], f)
	}
	return groups
}

// TotalFiles returns the number of files across all buckets
func (g Groups) TotalFiles() int {
	n := 0
	for _, files := range g {
		n += len(files)
	}
	return n
}

// TotalBytes returns the combined size of all bucketed files
func (g Groups) TotalBytes() int64 {
	var n int64
	for _, files := range g {
		for _, f := range files {
			n += f.Size
		}
	}
	return n
}

// SortedKeys returns bucket keys ordered by date then type, so task
// dispatch order is deterministic for a fixed source tree
func (g Groups) SortedKeys() []GroupKey {
	keys := make([]GroupKey, 0, len(g))
	for key := range g {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			di, dj := keys[i].Date, keys[j].Date
			if di.Year != dj.Year {
				return di.Year < dj.Year
			}
			if di.Month != dj.Month {
				return di.Month < dj.Month
			}
			return di.Day < dj.Day
		}
		return keys[i].Type < keys[j].Type
	})
	return keys
}
