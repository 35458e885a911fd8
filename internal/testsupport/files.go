package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteLines writes lines joined by newlines to path, creating parent
// directories as needed.
func WriteLines(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadLines returns the newline separated lines of path.
func ReadLines(t testing.TB, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), "\n")
}
