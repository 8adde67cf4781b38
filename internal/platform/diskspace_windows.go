//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// FreeSpace returns the number of bytes available to the calling user
// on the volume containing path
func FreeSpace(path string) (uint64, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, fmt.Errorf("failed to encode path: %w", err)
	}

	var freeToCaller, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &freeToCaller, &total, &totalFree); err != nil {
		return 0, fmt.Errorf("failed to query free space: %w", err)
	}
	return freeToCaller, nil
}
