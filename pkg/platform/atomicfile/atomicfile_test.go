package atomicfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govdesk/pkg/platform/atomicfile"
	"govdesk/pkg/platform/sentinel"
)

func TestWriteReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b.json")

	require.NoError(t, atomicfile.Write(path, []byte("first")))
	require.NoError(t, atomicfile.Write(path, []byte("second")))

	got, err := atomicfile.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadMissingOrBlank(t *testing.T) {
	dir := t.TempDir()
	got, err := atomicfile.Read(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := filepath.Join(dir, "blank.json")
	require.NoError(t, os.WriteFile(blank, []byte("\n\t "), 0o644))
	got, err = atomicfile.Read(blank)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriteIntoFileParentFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := atomicfile.Write(filepath.Join(blocker, "child.json"), []byte("data"))
	assert.ErrorIs(t, err, sentinel.ErrIO)
}
