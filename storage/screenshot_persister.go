// Package storage persists artifacts captured from automation sessions.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ScreenshotPersister will persist captured screenshots. It abstracts away
// the where and how of writing them to their destination.
type ScreenshotPersister interface {
	Persist(ctx context.Context, path string, png []byte) error
}

// LocalScreenshotPersister will persist screenshots to the local disk.
type LocalScreenshotPersister struct{}

// Persist writes the PNG bytes to the local disk on the specified path. The
// write goes through a temporary file and a rename so readers never observe
// a partial screenshot.
func (l *LocalScreenshotPersister) Persist(_ context.Context, path string, png []byte) error {
	cp := filepath.Clean(path)

	dir := filepath.Dir(cp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating a local directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(cp)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating a temporary file in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(png); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("writing screenshot to %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), cp); err != nil {
		return fmt.Errorf("renaming %q to %q: %w", tmp.Name(), cp, err)
	}

	return nil
}
