// Package config resolves runtime settings from defaults, an optional TOML
// file and environment variables, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:8002"
	DefaultModel     = "whisper-1"
	DefaultAudioFile = "/tmp/whisper_recording.wav"
	DefaultPIDFile   = "/tmp/whisper_tray.pid"
)

type Config struct {
	BaseURL   string
	Model     string
	AudioFile string
	PIDFile   string

	CaptureCmd  string
	NotifierCmd string

	AudioInput  string // capture input driver, e.g. "pulse"
	AudioDevice string
	SampleRate  int
	Channels    int
}

type fileConfig struct {
	BaseURL     string `toml:"base_url"`
	Model       string `toml:"model"`
	AudioFile   string `toml:"audio_file"`
	PIDFile     string `toml:"pid_file"`
	CaptureCmd  string `toml:"capture_cmd"`
	NotifierCmd string `toml:"notifier_cmd"`
	AudioInput  string `toml:"audio_input"`
	AudioDevice string `toml:"audio_device"`
	SampleRate  int    `toml:"sample_rate"`
	Channels    int    `toml:"channels"`
}

func Load() (*Config, error) {
	// A .env in the working directory is convenient during development;
	// absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		AudioFile:   DefaultAudioFile,
		PIDFile:     DefaultPIDFile,
		CaptureCmd:  "ffmpeg",
		NotifierCmd: "yad",
		AudioInput:  "pulse",
		AudioDevice: "default",
		SampleRate:  16000,
		Channels:    1,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			applyFile(cfg, fc)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.AudioFile != "" {
		cfg.AudioFile = fc.AudioFile
	}
	if fc.PIDFile != "" {
		cfg.PIDFile = fc.PIDFile
	}
	if fc.CaptureCmd != "" {
		cfg.CaptureCmd = fc.CaptureCmd
	}
	if fc.NotifierCmd != "" {
		cfg.NotifierCmd = fc.NotifierCmd
	}
	if fc.AudioInput != "" {
		cfg.AudioInput = fc.AudioInput
	}
	if fc.AudioDevice != "" {
		cfg.AudioDevice = fc.AudioDevice
	}
	if fc.SampleRate > 0 {
		cfg.SampleRate = fc.SampleRate
	}
	if fc.Channels > 0 {
		cfg.Channels = fc.Channels
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WHISPER_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("WHISPERTRAY_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("WHISPERTRAY_AUDIO_FILE"); v != "" {
		cfg.AudioFile = v
	}
	if v := os.Getenv("WHISPERTRAY_PID_FILE"); v != "" {
		cfg.PIDFile = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "whispertray")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "whispertray")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// CaptureArgs builds the capture command line: default source, mono 16 kHz
// signed 16-bit PCM, written as WAV to the temporary file.
func (c *Config) CaptureArgs() []string {
	return []string{
		"-nostdin",
		"-f", c.AudioInput,
		"-i", c.AudioDevice,
		"-ac", strconv.Itoa(c.Channels),
		"-ar", strconv.Itoa(c.SampleRate),
		"-f", "wav",
		"-acodec", "pcm_s16le",
		"-loglevel", "quiet",
		"-y",
		c.AudioFile,
	}
}
