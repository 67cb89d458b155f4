//go:build !nativeclipboard && !darwin

// Package clipboard copies text to the system clipboard by piping it to an
// external clipboard command. Build with -tags nativeclipboard (or on darwin)
// to use the native clipboard library instead.
package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"whispertray/log"
)

// Writer pipes text to a clipboard-setting command's stdin.
type Writer struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// Default targets the X selection buffer, matching the xsel contract.
var Default = Writer{
	Command: "xsel",
	Args:    []string{"-b", "-i"},
	Timeout: 2 * time.Second,
}

// Set copies text using the default writer.
func Set(text string) bool {
	return Default.Set(text)
}

// Set returns true only when the command consumed the full text and exited
// zero within the timeout. Empty text is a silent no-op; no command is
// spawned. All failures are logged, never propagated.
func (w Writer) Set(text string) bool {
	if text == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, w.Command, w.Args...)
	cmd.Stdin = strings.NewReader(text)

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			log.Errorf("clipboard: %s timed out after %s", w.Command, w.Timeout)
		case errors.Is(err, exec.ErrNotFound):
			log.Errorf("clipboard: %s not found, install it", w.Command)
		default:
			log.Errorf("clipboard: %v", err)
		}
		return false
	}
	return true
}

// Requirement names the external binary the startup preflight must find.
func Requirement() (string, bool) {
	return Default.Command, true
}
