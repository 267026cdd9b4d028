// Package config handles reading and writing .vetta/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .vetta/config.yaml.
type Config struct {
	Version    int              `yaml:"version"`
	Server     ServerConfig     `yaml:"server"`
	Proctoring ProctoringConfig `yaml:"proctoring"`
	History    HistoryConfig    `yaml:"history"`
	Admin      AdminConfig      `yaml:"admin"`
}

// ServerConfig points the client at the interview platform.
type ServerConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// ProctoringConfig controls the webcam telemetry pipeline.
type ProctoringConfig struct {
	FrameIntervalMS int    `yaml:"frame_interval_ms"`
	JPEGQuality     int    `yaml:"jpeg_quality"`
	CameraDevice    string `yaml:"camera_device"`
	FFmpegPath      string `yaml:"ffmpeg_path"` // empty means look up in PATH
}

// HistoryConfig controls the local attempt history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"` // relative paths resolve against the config dir
}

// AdminConfig holds admin-view preferences.
type AdminConfig struct {
	PageSize int `yaml:"page_size"`
}

const configDir = ".vetta"
const configFile = "config.yaml"

// ReadConfig reads .vetta/config.yaml from the given directory.
// dir is the user's home or working directory (not .vetta/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .vetta/config.yaml in the given directory.
// Creates the .vetta/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL:   "http://localhost:8000/api",
			TimeoutMS: 30000,
		},
		Proctoring: ProctoringConfig{
			FrameIntervalMS: 2000,
			JPEGQuality:     50,
			CameraDevice:    defaultCameraDevice(),
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "history.db",
		},
		Admin: AdminConfig{
			PageSize: 20,
		},
	}
}
