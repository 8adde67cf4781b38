//go:build windows

package platform

import (
	"errors"

	"golang.org/x/sys/windows"
)

// IsDiskFull reports whether err indicates the volume ran out of space.
// This is the only error class that aborts a run.
func IsDiskFull(err error) bool {
	return errors.Is(err, windows.ERROR_DISK_FULL) || errors.Is(err, windows.ERROR_HANDLE_DISK_FULL)
}
