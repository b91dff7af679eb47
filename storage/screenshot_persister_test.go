package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalScreenshotPersister(t *testing.T) {
	t.Parallel()

	t.Run("ok/creates_nested_directories", func(t *testing.T) {
		t.Parallel()

		png := []byte{0x89, 'P', 'N', 'G'}
		path := filepath.Join(t.TempDir(), "a", "b", "shot.png")

		var p LocalScreenshotPersister
		require.NoError(t, p.Persist(context.Background(), path, png))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, png, got)
	})

	t.Run("ok/overwrites_existing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shot.png")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		var p LocalScreenshotPersister
		require.NoError(t, p.Persist(context.Background(), path, []byte("new")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})

	t.Run("ok/no_temp_file_left_behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var p LocalScreenshotPersister
		require.NoError(t, p.Persist(context.Background(), filepath.Join(dir, "shot.png"), []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "shot.png", entries[0].Name())
	})
}
