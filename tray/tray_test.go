package tray

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type failWriter struct{ writes int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("broken pipe")
}

func TestSetStateWritesCommandPairs(t *testing.T) {
	var buf bytes.Buffer
	tr := &Tray{out: &buf}

	tr.SetRecording()
	tr.SetProcessing()
	tr.SetIdle()

	want := strings.Join([]string{
		"icon:media-record",
		"tooltip:Whisper: Recording... (press toggle to stop)",
		"icon:system-search",
		"tooltip:Whisper: Processing...",
		"icon:audio-input-microphone",
		"tooltip:Whisper: Idle (press toggle to record)",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("stream =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestBrokenChannelDropsTray(t *testing.T) {
	w := &failWriter{}
	tr := &Tray{out: w}

	tr.SetRecording()
	if w.writes != 1 {
		t.Fatalf("writes = %d, want 1 (drop after first failure)", w.writes)
	}

	// Permanently inactive afterwards
	tr.SetIdle()
	tr.SetProcessing()
	if w.writes != 1 {
		t.Errorf("writes = %d after drop, want still 1", w.writes)
	}
}

func TestNilTrayIsSafe(t *testing.T) {
	var tr *Tray
	tr.SetIdle()
	tr.SetRecording()
	tr.SetProcessing()
	tr.Quit()
}

func TestQuitSendsQuitOnce(t *testing.T) {
	var buf bytes.Buffer
	tr := &Tray{out: &buf}

	tr.Quit()
	tr.Quit()

	if got := buf.String(); got != "quit\n" {
		t.Errorf("stream = %q, want single quit", got)
	}
	// Channel is closed for further state updates
	tr.SetRecording()
	if got := buf.String(); got != "quit\n" {
		t.Errorf("stream after quit = %q", got)
	}
}

func TestStartMissingNotifierDegrades(t *testing.T) {
	if tr := Start("whispertray-no-such-binary"); tr != nil {
		t.Error("expected nil tray for missing notifier")
	}
}
