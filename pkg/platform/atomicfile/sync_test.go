package atomicfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govdesk/pkg/platform/sentinel"
)

func TestWriteSyncsParentDirectory(t *testing.T) {
	orig := syncDir
	t.Cleanup(func() { syncDir = orig })

	var synced []string
	syncDir = func(dir string) error {
		synced = append(synced, dir)
		return orig(dir)
	}

	path := filepath.Join(t.TempDir(), "data", "submissions.json")
	require.NoError(t, Write(path, []byte("[]")))
	assert.Equal(t, []string{filepath.Dir(path)}, synced)
}

func TestWriteReportsDirectorySyncFailure(t *testing.T) {
	orig := syncDir
	t.Cleanup(func() { syncDir = orig })
	syncDir = func(string) error { return errors.New("fsync: input/output error") }

	err := Write(filepath.Join(t.TempDir(), "n.json"), []byte("[]"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrIO)
}
