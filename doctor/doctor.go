// Package doctor runs preflight diagnostics over the external collaborators.
package doctor

import (
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"whispertray/clipboard"
	"whispertray/config"
)

// CheckBinaries verifies the required collaborator binaries are installed.
// This is the fatal subset run at every startup.
func CheckBinaries(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.CaptureCmd); err != nil {
		return fmt.Errorf("capture tool %q not found, install it", cfg.CaptureCmd)
	}
	if bin, required := clipboard.Requirement(); required {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("clipboard tool %q not found, install it", bin)
		}
	}
	return nil
}

// Run executes all diagnostics and returns an exit code (0 = required
// checks pass). The notifier and endpoint checks are advisory.
func Run(cfg *config.Config) int {
	fmt.Println("whispertray doctor - system diagnostics")
	fmt.Println("=======================================")

	pass := true

	fmt.Println()
	fmt.Println("[1/3] Required binaries")
	if err := CheckBinaries(cfg); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		pass = false
	} else {
		fmt.Println("  PASS: capture and clipboard tools found")
	}

	fmt.Println()
	fmt.Println("[2/3] Tray notifier (optional)")
	if _, err := exec.LookPath(cfg.NotifierCmd); err != nil {
		fmt.Printf("  WARN: %q not found, tray will be inactive\n", cfg.NotifierCmd)
	} else {
		fmt.Println("  PASS: notifier found")
	}

	fmt.Println()
	fmt.Println("[3/3] Transcription endpoint (optional)")
	if err := checkEndpoint(cfg.BaseURL); err != nil {
		fmt.Printf("  WARN: %s not reachable: %v\n", cfg.BaseURL, err)
	} else {
		fmt.Println("  PASS: endpoint reachable")
	}

	fmt.Println()
	if pass {
		fmt.Println("All required checks passed!")
		return 0
	}
	fmt.Println("Required checks failed. See details above.")
	return 1
}

// checkEndpoint probes the base URL; any HTTP response counts as reachable.
func checkEndpoint(baseURL string) error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(baseURL)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
