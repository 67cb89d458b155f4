//go:build !windows

package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Notify registers the graceful-shutdown signals on ch.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}

// NotifyToggle registers the recording toggle signal on ch.
func NotifyToggle(ch chan os.Signal) {
	signal.Notify(ch, syscall.SIGUSR1)
}
