//go:build windows

package shutdown

import (
	"os"
	"os/signal"
)

func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt)
}

// NotifyToggle is a no-op: there is no user-defined signal to deliver the
// toggle with on this platform.
func NotifyToggle(ch chan os.Signal) {
}
