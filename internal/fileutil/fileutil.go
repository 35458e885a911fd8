package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File is one entry of a set written by WriteAtomicSet.
type File struct {
	Path string
	Data []byte
	Mode os.FileMode
}

// WriteAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partially written file.
func WriteAtomic(path string, data []byte, mode os.FileMode) error {
	return WriteAtomicSet([]File{{Path: path, Data: data, Mode: mode}})
}

// WriteAtomicSet stages every file in a temp file before renaming any of them.
// A failure while staging leaves all targets untouched. Only a failing rename
// can leave the set mixed, and then the error names the first target left
// unchanged.
func WriteAtomicSet(files []File) error {
	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp) // no-op after a successful rename
		}
	}()

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			return fmt.Errorf("stage %s: %w", f.Path, err)
		}
		staged = append(staged, tmp)
	}
	for i, f := range files {
		if err := os.Rename(staged[i], f.Path); err != nil {
			return fmt.Errorf("rename temp file for %s: %w", f.Path, err)
		}
	}
	return nil
}

func stage(f File) (string, error) {
	if f.Path == "" {
		return "", errors.New("empty path")
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(f.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, f.Mode); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return tmpPath, nil
}
