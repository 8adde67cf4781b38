//go:build !darwin && !windows

package media

import (
	"os"
	"time"
)

// captureTimestamp falls back to mtime: Linux filesystems expose no
// portable birth time through os.FileInfo. This is a lossy substitution;
// a file touched after capture sorts under the touch date.
func captureTimestamp(info os.FileInfo) time.Time {
	return info.ModTime()
}
