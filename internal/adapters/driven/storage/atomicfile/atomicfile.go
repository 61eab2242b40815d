// Package atomicfile writes output files through a temporary file and a
// rename, so a reader never observes a half-written file.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirPerm is the permission used when creating output directories.
const DirPerm = 0o755

// Write creates dir (and any missing parents), streams the file content
// through write into a temporary file in dir, and renames it to name.
// On any error the temporary file is removed and name is left untouched.
// It returns the final path.
func Write(dir, name string, write func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	final := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if err := write(tmp); err != nil {
		cleanup()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("syncing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	// CreateTemp uses 0600; output files are meant to be shared.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming %s into place: %w", name, err)
	}

	return final, nil
}
