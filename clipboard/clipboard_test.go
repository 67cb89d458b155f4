//go:build !nativeclipboard && !darwin

package clipboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetEmptySpawnsNothing(t *testing.T) {
	// A missing command would fail loudly if it were invoked.
	w := Writer{Command: "whispertray-no-such-binary", Timeout: time.Second}
	if w.Set("") {
		t.Error("empty text must return false")
	}
}

func TestSetPipesTextExactly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clip.txt")
	w := Writer{Command: "sh", Args: []string{"-c", "cat > " + out}, Timeout: 2 * time.Second}

	if !w.Set("hello") {
		t.Fatal("Set returned false")
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("piped %q, want %q", string(data), "hello")
	}
}

func TestSetMissingCommand(t *testing.T) {
	w := Writer{Command: "whispertray-no-such-binary", Timeout: time.Second}
	if w.Set("hello") {
		t.Error("expected false for missing command")
	}
}

func TestSetNonZeroExit(t *testing.T) {
	w := Writer{Command: "sh", Args: []string{"-c", "exit 3"}, Timeout: time.Second}
	if w.Set("hello") {
		t.Error("expected false for non-zero exit")
	}
}

func TestSetTimeout(t *testing.T) {
	w := Writer{Command: "sleep", Args: []string{"10"}, Timeout: 100 * time.Millisecond}
	start := time.Now()
	if w.Set("hello") {
		t.Error("expected false on timeout")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout not enforced")
	}
}

func TestRequirement(t *testing.T) {
	bin, required := Requirement()
	if bin != "xsel" || !required {
		t.Errorf("got (%q, %v), want (xsel, true)", bin, required)
	}
}
