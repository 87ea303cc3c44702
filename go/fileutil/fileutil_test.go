package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	got, err := EnsureDirExists(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	_, err = EnsureDirExists(dir)
	require.NoError(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
	// Directories are not regular files.
	assert.False(t, FileExists(dir))
}
