// Package session owns the recording state machine: Idle -> Recording ->
// Processing -> Idle, driven by toggle signals, plus the single-instance
// PID lease and exit cleanup.
package session

import (
	"os"
	"time"

	"whispertray/clipboard"
	"whispertray/config"
	"whispertray/log"
	"whispertray/proc"
	"whispertray/transcriber"
	"whispertray/tray"
	"whispertray/wav"
)

type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	default:
		return "idle"
	}
}

const (
	captureStartGrace = 100 * time.Millisecond
	captureStopGrace  = 1 * time.Second
)

// Controller mutates all session state from a single goroutine (the control
// loop); no locking by design.
type Controller struct {
	cfg     *config.Config
	tray    *tray.Tray
	state   State
	capture *proc.Handle

	// seams for tests
	launch     func(name string, args []string, opts proc.Options) (*proc.Handle, error)
	transcribe func(path string) (string, error)
	copyText   func(text string) bool
}

func New(cfg *config.Config, tr *tray.Tray, client *transcriber.Client) *Controller {
	return &Controller{
		cfg:        cfg,
		tray:       tr,
		launch:     proc.Launch,
		transcribe: client.Transcribe,
		copyText:   clipboard.Set,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Toggle starts a recording from Idle and stops-and-transcribes from
// Recording. A toggle during Processing is ignored. The state the toggle
// found is returned so the control loop can tell which transition ran.
func (c *Controller) Toggle() State {
	prev := c.state
	switch prev {
	case StateRecording:
		c.stopAndTranscribe()
	case StateProcessing:
		log.Warn("toggle ignored: still processing")
	default:
		c.startRecording()
	}
	return prev
}

func (c *Controller) startRecording() {
	h, err := c.launch(c.cfg.CaptureCmd, c.cfg.CaptureArgs(), proc.Options{StartupGrace: captureStartGrace})
	if err != nil {
		log.Errorf("capture start: %v", err)
		return
	}
	c.capture = h
	c.state = StateRecording
	c.tray.SetRecording()
	log.Info("recording started")
}

func (c *Controller) stopAndTranscribe() {
	log.Info("stopping recording")
	if c.capture != nil {
		if err := c.capture.Terminate(captureStopGrace); err != nil {
			log.Warnf("capture stop: %v", err)
		}
		c.capture = nil
	}

	c.state = StateProcessing
	c.tray.SetProcessing()

	c.inspectRecording()

	// Blocks the control loop for up to the client timeout; further
	// toggles are ignored by the Processing guard.
	text, err := c.transcribe(c.cfg.AudioFile)
	if err != nil {
		log.Errorf("transcription: %v", err)
	} else {
		log.TranscriptionText(text)
		if c.copyText(text) {
			log.Info("copied to clipboard")
		}
	}

	c.removeAudioFile()
	c.state = StateIdle
	c.tray.SetIdle()
}

// inspectRecording sanity-checks the capture output; advisory only, the
// transcription attempt proceeds either way.
func (c *Controller) inspectRecording() {
	f, err := os.Open(c.cfg.AudioFile)
	if err != nil {
		log.Warnf("recording file: %v", err)
		return
	}
	defer f.Close()

	info, err := wav.Inspect(f)
	if err != nil {
		log.Warnf("recording: %v", err)
		return
	}
	log.Infof("recorded %.1fs at %d Hz", info.Duration().Seconds(), info.SampleRate)
}

func (c *Controller) removeAudioFile() {
	if err := os.Remove(c.cfg.AudioFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("remove audio file: %v", err)
	}
}

// Cleanup tears everything down regardless of current state: in-flight
// capture, notifier, PID lease, leftover audio file. Idempotent.
func (c *Controller) Cleanup() {
	log.Info("cleaning up")
	if c.capture != nil {
		if err := c.capture.Terminate(captureStopGrace); err != nil {
			log.Warnf("capture stop: %v", err)
		}
		c.capture = nil
	}
	c.tray.Quit()
	ReleasePIDLease(c.cfg.PIDFile)
	c.removeAudioFile()
	c.state = StateIdle
}
