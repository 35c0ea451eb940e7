package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/scirnap/pkg/types"
)

// placeholder is the content of fixture files whose content does not matter
const placeholder = "x"

// DataDir creates a temporary data directory holding the named files.
// The directory is removed when the test completes.
func DataDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		CreateFile(t, dir, name, placeholder)
	}
	return dir
}

// CreateFile creates a file with the given content in dir, along with any
// missing parent directories. It fails the test if the file cannot be
// created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MemoryDataDir populates dir on fs with the named files
func MemoryDataDir(t *testing.T, fs types.FS, dir string, names ...string) {
	t.Helper()

	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := fs.WriteFile(path, []byte(placeholder), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
}
