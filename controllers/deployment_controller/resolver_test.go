package deployment_controller

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openmapkit/deployment-repo/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDeployment(t *testing.T) {
	publicDir := t.TempDir()
	writeTree(t, filepath.Join(publicDir, "deployments"),
		"valid/manifest.json", "valid/map.osm",
		"invalid/map.osm",
		"sibling/manifest.json",
	)
	fs := newFaultyFilesystem()
	catalog := NewCatalog(testConfig(publicDir), fs, testLocator{})

	d, err := catalog.GetDeployment(testContext(), "valid")
	require.NoError(t, err)
	assert.Equal(t, "valid", d.Name)
	assert.True(t, d.Valid)
	require.Len(t, d.Files["osm"], 1)
	assert.Equal(t, "map.osm", d.Files["osm"][0].Name)

	// Siblings are never enumerated
	for _, p := range append(fs.statCalls, fs.readDirCalls...) {
		assert.NotContains(t, p, "sibling")
	}

	d, err = catalog.GetDeployment(testContext(), "invalid")
	require.NoError(t, err)
	assert.False(t, d.Valid)
	assert.Equal(t, MissingManifestMessage, d.Message)
}

func TestGetDeploymentMissing(t *testing.T) {
	publicDir := t.TempDir()
	writeTree(t, filepath.Join(publicDir, "deployments"), "present/manifest.json")
	catalog := NewCatalog(testConfig(publicDir), OsFilesystem, testLocator{})

	d, err := catalog.GetDeployment(testContext(), "missing")
	assert.Nil(t, d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGetDeploymentMissingRootIsAnError(t *testing.T) {
	catalog := NewCatalog(testConfig(t.TempDir()), OsFilesystem, testLocator{})

	d, err := catalog.GetDeployment(testContext(), "anything")
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGetDeploymentThatIsAFile(t *testing.T) {
	publicDir := t.TempDir()
	writeTree(t, filepath.Join(publicDir, "deployments"), "notadir.osm")
	catalog := NewCatalog(testConfig(publicDir), OsFilesystem, testLocator{})

	d, err := catalog.GetDeployment(testContext(), "notadir.osm")
	assert.Nil(t, d)
	assert.Error(t, err)
}

func TestGetDeploymentRejectsUnsafeNames(t *testing.T) {
	publicDir := t.TempDir()
	writeTree(t, publicDir, "deployments/", "secret/manifest.json")
	fs := newFaultyFilesystem()
	catalog := NewCatalog(testConfig(publicDir), fs, testLocator{})

	for _, name := range []string{"", ".", "..", "../secret", "a/b", "a\\b", "nul\x00"} {
		d, err := catalog.GetDeployment(testContext(), name)
		assert.Nil(t, d, name)
		assert.True(t, errors.Is(err, common.ErrInvalidDeploymentName), name)
	}

	stats, readDirs := fs.calls()
	assert.Equal(t, 0, stats)
	assert.Equal(t, 0, readDirs)
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("deployment-1"))
	assert.True(t, IsValidName("..hidden"))
	assert.True(t, IsValidName("with space"))
	assert.False(t, IsValidName(".."))
	assert.False(t, IsValidName("x/y"))
}
