//go:build windows

package media

import (
	"os"
	"syscall"
	"time"
)

// captureTimestamp returns the file's creation time as recorded by NTFS.
func captureTimestamp(info os.FileInfo) time.Time {
	if attr, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, attr.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
