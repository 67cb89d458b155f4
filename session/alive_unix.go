//go:build !windows

package session

import (
	"errors"
	"syscall"
)

// processAlive probes pid with the null signal; EPERM still means the
// process exists.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
