// Package transcriber posts recorded audio to a Whisper-compatible HTTP
// endpoint and extracts the transcribed text.
package transcriber

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const endpoint = "/v1/audio/transcriptions"

// ErrNoText marks responses that carry no usable transcription: invalid
// JSON, a missing text field, or text that is empty after trimming.
var ErrNoText = errors.New("no text in transcription response")

type Client struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// New returns a client with the fixed 60s overall request timeout.
func New(baseURL, model string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type response struct {
	Text string `json:"text"`
}

// Transcribe posts the file at path as a multipart form and returns the
// trimmed, unescaped text. The call blocks for up to the client timeout.
func (c *Client) Transcribe(path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read recording: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", c.Model); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.BaseURL+endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("%w: invalid JSON: %s", ErrNoText, strings.TrimSpace(string(data)))
	}

	text := unescape(strings.TrimSpace(r.Text))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// unescape reverses the literal \n and \" sequences some servers leave in
// the text field.
func unescape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.ReplaceAll(s, `\"`, `"`)
}
