// Package tray drives an external notifier process over its stdin using
// newline-terminated icon:/tooltip:/quit commands.
package tray

import (
	"fmt"
	"io"
	"sync"
	"time"

	"whispertray/log"
	"whispertray/proc"
)

const (
	iconIdle       = "audio-input-microphone"
	iconRecording  = "media-record"
	iconProcessing = "system-search"

	tooltipIdle       = "Whisper: Idle (press toggle to record)"
	tooltipRecording  = "Whisper: Recording... (press toggle to stop)"
	tooltipProcessing = "Whisper: Processing..."
)

// Tray is the handle to the notifier's command stream. A nil *Tray is a
// valid inactive tray; all methods no-op on it.
type Tray struct {
	mu     sync.Mutex
	out    io.Writer
	handle *proc.Handle
	dead   bool

	quitOnce sync.Once
}

// Start launches the notifier in listen mode with the idle icon and tooltip.
// A missing or immediately-dying notifier returns nil: the program degrades
// to headless operation.
func Start(command string) *Tray {
	args := []string{
		"--notification",
		"--image=" + iconIdle,
		"--text=" + tooltipIdle,
		"--listen",
	}
	h, err := proc.Launch(command, args, proc.Options{Stdin: true, StartupGrace: 200 * time.Millisecond})
	if err != nil {
		log.Warnf("tray: %v", err)
		return nil
	}
	return &Tray{out: h.Stdin(), handle: h}
}

func (t *Tray) SetIdle()       { t.set(iconIdle, tooltipIdle) }
func (t *Tray) SetRecording()  { t.set(iconRecording, tooltipRecording) }
func (t *Tray) SetProcessing() { t.set(iconProcessing, tooltipProcessing) }

func (t *Tray) set(icon, tooltip string) {
	t.send("icon:" + icon)
	t.send("tooltip:" + tooltip)
}

// send writes one command line, best-effort. The first broken write drops
// the channel for the rest of the run; no reconnect is attempted.
func (t *Tray) send(cmd string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dead || t.out == nil {
		return
	}
	if _, err := fmt.Fprintf(t.out, "%s\n", cmd); err != nil {
		log.Errorf("tray: command channel broken: %v", err)
		t.dead = true
	}
}

// Quit tells the notifier to exit and reaps it. Safe to call repeatedly.
func (t *Tray) Quit() {
	if t == nil {
		return
	}
	t.quitOnce.Do(func() {
		t.send("quit")
		t.mu.Lock()
		t.dead = true
		t.mu.Unlock()
		if t.handle != nil {
			t.handle.CloseStdin()
			if err := t.handle.Terminate(2 * time.Second); err != nil {
				log.Warnf("tray: %v", err)
			}
		}
	})
}
