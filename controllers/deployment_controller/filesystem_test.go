package deployment_controller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOsFilesystemReadDir(t *testing.T) {
	dir := t.TempDir()

	names, err := OsFilesystem.ReadDir(dir)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)

	writeTree(t, dir, "a.osm", "sub/", "sub/inner.osm")
	names, err = OsFilesystem.ReadDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.osm", "sub"}, names)

	_, err = OsFilesystem.ReadDir(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))

	_, err = OsFilesystem.ReadDir(filepath.Join(dir, "a.osm"))
	assert.Error(t, err)
}

func TestOsFilesystemStat(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.osm", "sub/")

	info, err := OsFilesystem.Stat(filepath.Join(dir, "a.osm"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(len("a.osm")), info.Size())

	info, err = OsFilesystem.Stat(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = OsFilesystem.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))
}
