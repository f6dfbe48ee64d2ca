package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conductor/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS(t *testing.T) {
	fsys := filesystem.NewMemory()

	require.NoError(t, fsys.MkdirAll("/project/pods", 0755))
	require.NoError(t, fsys.WriteFile("/project/pods/b.yml", []byte("b"), 0644))
	require.NoError(t, fsys.WriteFile("/project/pods/a.yml", []byte("a"), 0644))

	data, err := fsys.ReadFile("/project/pods/a.yml")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	entries, err := fsys.ReadDir("/project/pods")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.yml", entries[0].Name())
	assert.Equal(t, "b.yml", entries[1].Name())

	_, err = fsys.ReadFile("/project/pods")
	assert.Error(t, err, "reading a directory should fail")

	require.NoError(t, fsys.RemoveAll("/project/pods"))
	ok, err := filesystem.Exists(fsys, "/project/pods")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewOS()

	path := filepath.Join(dir, "nested", "file.txt")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, []byte("content"), 0644))

	ok, err := filesystem.Exists(fsys, path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, filesystem.IsDir(fsys, filepath.Dir(path)))
	assert.False(t, filesystem.IsDir(fsys, path))

	require.NoError(t, fsys.Remove(path))
	ok, err = filesystem.Exists(fsys, path)
	require.NoError(t, err)
	assert.False(t, ok)
}
