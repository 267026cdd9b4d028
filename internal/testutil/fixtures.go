// Package testutil provides test helper utilities for vetta tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempWorkspace creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// LegacyConfigWorkspace returns files for a workspace with an older config
// that predates the proctoring and history sections.
func LegacyConfigWorkspace() map[string]string {
	return map[string]string{
		".vetta/config.yaml": `version: 1
server:
  base_url: http://localhost:8000/api
  timeout_ms: 30000
`,
	}
}

// LoggedWorkspace returns files for a workspace with an existing event log.
func LoggedWorkspace() map[string]string {
	return map[string]string{
		".vetta/log.jsonl": `{"time":"2026-08-01T10:00:00Z","event":"session_started","interview":"7","candidate":"Dana"}
{"time":"2026-08-01T10:05:00Z","event":"session_terminated","interview":"7","warnings":3}
`,
	}
}

// EmptyWorkspace returns an empty directory with no files.
func EmptyWorkspace() map[string]string {
	return map[string]string{}
}
