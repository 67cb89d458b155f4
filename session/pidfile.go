package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"whispertray/log"
)

var ErrAlreadyRunning = errors.New("another instance is already running")

// AcquirePIDLease takes the single-instance lock. When the file names a live
// process the lease is refused and the file left untouched; a stale or
// garbled file is replaced.
func AcquirePIDLease(path string) error {
	if data, err := os.ReadFile(path); err == nil {
		pid, perr := strconv.Atoi(strings.TrimSpace(string(data)))
		if perr == nil && processAlive(pid) {
			return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		log.Warnf("removing stale PID file %s", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale PID file: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	return nil
}

// ReleasePIDLease drops the lock; a missing file is a no-op.
func ReleasePIDLease(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warnf("remove PID file: %v", err)
	}
}
