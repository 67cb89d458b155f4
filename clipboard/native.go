//go:build nativeclipboard || darwin

package clipboard

import (
	cb "github.com/atotto/clipboard"

	"whispertray/log"
)

func Set(text string) bool {
	if text == "" {
		return false
	}
	if err := cb.WriteAll(text); err != nil {
		log.Errorf("clipboard: %v", err)
		return false
	}
	return true
}

// Requirement reports no external binary; the native library carries its own
// platform support.
func Requirement() (string, bool) {
	return "", false
}
