// Package atomicfile replaces whole files without exposing partial writes.
// The data and the parent directory are both fsynced, so a completed Write
// survives a crash.
package atomicfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"govdesk/pkg/platform/sentinel"
)

// Write stores data at path via a temp file in the same directory followed by
// a rename. Missing parent directories are created. Errors wrap sentinel.ErrIO.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", sentinel.ErrIO, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", sentinel.ErrIO, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write %s: %v", sentinel.ErrIO, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync %s: %v", sentinel.ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close %s: %v", sentinel.ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: replace %s: %v", sentinel.ErrIO, path, err)
	}
	if err := syncDir(dir); err != nil {
		return fmt.Errorf("%w: sync %s: %v", sentinel.ErrIO, dir, err)
	}
	return nil
}

// syncDir flushes the directory entry written by the rename.
var syncDir = func(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// Read returns the file contents, or nil when the file is missing or blank.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", sentinel.ErrIO, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}
