//go:build darwin

package media

import (
	"os"
	"syscall"
	"time"
)

// captureTimestamp returns the file's birth time. APFS and HFS+ record
// it; it survives edits that rewrite mtime.
func captureTimestamp(info os.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	}
	return info.ModTime()
}
