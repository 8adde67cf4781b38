//go:build !windows

package platform

import (
	"fmt"
	"syscall"
)

// FreeSpace returns the number of bytes available to unprivileged users
// on the filesystem containing path
func FreeSpace(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("failed to stat filesystem: %w", err)
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
