//go:build !windows

package platform

import (
	"errors"
	"syscall"
)

// IsDiskFull reports whether err indicates the filesystem ran out of
// space (or quota). This is the only error class that aborts a run.
func IsDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT)
}
