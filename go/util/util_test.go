package util

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxInt(t *testing.T) {
	assert.Equal(t, 5, MaxInt(5))
	assert.Equal(t, 5, MaxInt(1, 5))
	assert.Equal(t, 5, MaxInt(5, 1))
	assert.Equal(t, 7, MaxInt(-3, 0, 7, 2))
	assert.Equal(t, -1, MaxInt(-3, -1, -2))
}

func TestMinInt(t *testing.T) {
	assert.Equal(t, 1, MinInt(1, 5))
	assert.Equal(t, 1, MinInt(5, 1))
	assert.Equal(t, -3, MinInt(-3, 0))
	assert.Equal(t, 2, MinInt(2, 2))
}

func TestAbsInt(t *testing.T) {
	assert.Equal(t, 0, AbsInt(0))
	assert.Equal(t, 4, AbsInt(4))
	assert.Equal(t, 4, AbsInt(-4))
}

func TestWithWriteFileAndWithReadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WithWriteFile(file, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))

	var got []byte
	require.NoError(t, WithReadFile(file, func(r io.Reader) error {
		var err error
		got, err = io.ReadAll(r)
		return err
	}))
	assert.Equal(t, "hello", string(got))
}

func TestWithWriteFile_ErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.txt")
	writeErr := errors.New("write failed")
	err := WithWriteFile(file, func(w io.Writer) error {
		return writeErr
	})
	require.ErrorIs(t, err, writeErr)

	// Neither the target nor the temporary file survives a failed write.
	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWithWriteFile_OverwritesExisting(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(file, []byte("old"), 0644))
	require.NoError(t, WithWriteFile(file, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
}
