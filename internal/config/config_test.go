package config

import (
	"testing"

	"github.com/vetta-dev/vetta/internal/testutil"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://interviews.example.com/api"
	cfg.Proctoring.FrameIntervalMS = 1500

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Server.BaseURL != "https://interviews.example.com/api" {
		t.Errorf("Server.BaseURL: got %q, want %q", loaded.Server.BaseURL, "https://interviews.example.com/api")
	}
	if loaded.Proctoring.FrameIntervalMS != 1500 {
		t.Errorf("Proctoring.FrameIntervalMS: got %d, want 1500", loaded.Proctoring.FrameIntervalMS)
	}
}

func TestDefaultConfigFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Proctoring.FrameIntervalMS != 2000 {
		t.Errorf("default FrameIntervalMS: got %d, want 2000", cfg.Proctoring.FrameIntervalMS)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	if _, err := ReadConfig(tmpDir); err == nil {
		t.Error("ReadConfig on missing file should error")
	}
}

func TestBackwardCompatibility(t *testing.T) {
	// Simulate an old config file without the newer sections.
	tmpDir := testutil.TempWorkspace(t, testutil.LegacyConfigWorkspace())

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed on old config: %v", err)
	}
	if cfg == nil {
		t.Fatal("config should not be nil")
	}
	if cfg.Proctoring.FrameIntervalMS != 0 {
		t.Errorf("missing section should decode to zero value, got %d", cfg.Proctoring.FrameIntervalMS)
	}
}
