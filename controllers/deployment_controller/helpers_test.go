package deployment_controller

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testLocator struct{}

func (testLocator) ApiUrl(ctx rcontext.RequestContext, relPath string) string {
	return "http://omk.test/api/" + relPath
}

func (testLocator) PublicDirFileUrl(ctx rcontext.RequestContext, relDir string, name string) string {
	return "http://omk.test/data/" + relDir + "/" + name
}

// faultyFilesystem delegates to the real filesystem, failing for chosen paths
// and recording every call.
type faultyFilesystem struct {
	Filesystem
	statErrs    map[string]error
	readDirErrs map[string]error

	lock         sync.Mutex
	statCalls    []string
	readDirCalls []string
}

func newFaultyFilesystem() *faultyFilesystem {
	return &faultyFilesystem{
		Filesystem:  OsFilesystem,
		statErrs:    make(map[string]error),
		readDirErrs: make(map[string]error),
	}
}

func (f *faultyFilesystem) Stat(path string) (os.FileInfo, error) {
	f.lock.Lock()
	f.statCalls = append(f.statCalls, path)
	err := f.statErrs[path]
	f.lock.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Filesystem.Stat(path)
}

func (f *faultyFilesystem) ReadDir(path string) ([]string, error) {
	f.lock.Lock()
	f.readDirCalls = append(f.readDirCalls, path)
	err := f.readDirErrs[path]
	f.lock.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Filesystem.ReadDir(path)
}

func (f *faultyFilesystem) calls() (int, int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.statCalls), len(f.readDirCalls)
}

func testContext() rcontext.RequestContext {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return rcontext.FromConfig(context.Background(), config.NewDefaultMainConfig(), logrus.NewEntry(logger))
}

func testConfig(publicDir string) config.DeploymentsConfig {
	return config.DeploymentsConfig{
		PublicDir: publicDir,
		ParentDir: "deployments",
	}
}

// writeTree creates files (and, for names ending in "/", directories) relative to root.
func writeTree(t *testing.T, root string, entries ...string) {
	require.NoError(t, os.MkdirAll(root, 0755))
	for _, e := range entries {
		p := filepath.Join(root, filepath.FromSlash(e))
		if e[len(e)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(e), 0644))
	}
}
