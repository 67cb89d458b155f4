// Package proc launches and supervises the external collaborator processes.
// Every launched process is reaped exactly once; Terminate escalates from a
// graceful signal to a kill after the grace period and always waits for the
// exit status.
package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Options controls how a child process is wired up.
type Options struct {
	// Stdin opens a pipe to the child's standard input.
	Stdin bool
	// StartupGrace treats an exit within the window as a launch failure.
	StartupGrace time.Duration
}

// Handle owns a running child process.
type Handle struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	done     chan struct{}
	exitErr  error
	termOnce sync.Once
	termErr  error
}

// Launch starts name with args. The child's stdout is discarded and stderr is
// captured for error reporting.
func Launch(name string, args []string, opts Options) (*Handle, error) {
	cmd := exec.Command(name, args...)
	h := &Handle{cmd: cmd, done: make(chan struct{})}
	cmd.Stderr = &h.stderr

	if opts.Stdin {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe for %s: %w", name, err)
		}
		h.stdin = stdin
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch %s: %w", name, err)
	}

	go func() {
		h.exitErr = cmd.Wait()
		close(h.done)
	}()

	if opts.StartupGrace > 0 {
		timer := time.NewTimer(opts.StartupGrace)
		defer timer.Stop()
		select {
		case <-h.done:
			h.CloseStdin()
			msg := strings.TrimSpace(h.stderr.String())
			if msg == "" {
				msg = "no output"
			}
			return nil, fmt.Errorf("%s exited during startup: %s", name, msg)
		case <-timer.C:
		}
	}

	return h, nil
}

// Alive reports whether the process has not yet been reaped.
func (h *Handle) Alive() bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Stdin returns the child's input pipe, nil unless requested at launch.
func (h *Handle) Stdin() io.Writer {
	return h.stdin
}

// CloseStdin closes the child's input pipe.
func (h *Handle) CloseStdin() error {
	if h.stdin == nil {
		return nil
	}
	return h.stdin.Close()
}

// Terminate signals the process to stop and waits for it to exit. If it is
// still running after grace, it is killed. Safe to call more than once.
func (h *Handle) Terminate(grace time.Duration) error {
	if h == nil {
		return nil
	}
	h.termOnce.Do(func() {
		select {
		case <-h.done:
		default:
			_ = h.cmd.Process.Signal(os.Interrupt)
			timer := time.NewTimer(grace)
			select {
			case <-h.done:
			case <-timer.C:
				_ = h.cmd.Process.Kill()
				<-h.done
			}
			timer.Stop()
		}
		h.termErr = normalizeExitErr(h.exitErr)
		if h.termErr != nil && h.stderr.Len() > 0 {
			h.termErr = fmt.Errorf("%w: %s", h.termErr, strings.TrimSpace(h.stderr.String()))
		}
	})
	return h.termErr
}

// A signal-induced exit is the expected way these collaborators stop, so
// ExitError does not count as failure.
func normalizeExitErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
