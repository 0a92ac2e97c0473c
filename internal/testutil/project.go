package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteProject creates a temporary project directory containing files,
// keyed by slash-separated relative path, and returns its path.
func WriteProject(t testing.TB, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t testing.TB, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// ReadFile returns the content of dir/rel, failing the test if it is missing.
func ReadFile(t testing.TB, dir, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel))) //nolint:gosec // G304: test fixture path
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}
