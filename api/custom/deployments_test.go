package custom

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlerContext(t *testing.T, target string, vars map[string]string) rcontext.RequestContext {
	publicDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(publicDir, "deployments", "one"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "deployments", "one", "manifest.json"), []byte("{}"), 0644))

	cfg := config.NewDefaultMainConfig()
	cfg.Deployments.PublicDir = publicDir

	r := httptest.NewRequest("GET", target, nil)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	rctx := rcontext.FromConfig(context.Background(), cfg, logrus.NewEntry(logrus.New()))
	rctx.Request = r
	return rctx
}

func TestListDeploymentsHandler(t *testing.T) {
	rctx := handlerContext(t, "http://omk.test/omk/api/deployments", nil)

	res := ListDeployments(rctx.Request, rctx)
	wrapped, ok := res.(*api.DoNotCacheResponse)
	require.True(t, ok)
	deployments := wrapped.Payload.([]*types.Deployment)
	require.Len(t, deployments, 1)
	assert.Equal(t, "one", deployments[0].Name)
	assert.Equal(t, "http://omk.test/omk/api/deployments/one", deployments[0].Url)
}

func TestGetDeploymentHandler(t *testing.T) {
	rctx := handlerContext(t, "http://omk.test/omk/api/deployments/one", map[string]string{"deployment": "one"})

	res := GetDeployment(rctx.Request, rctx)
	wrapped, ok := res.(*api.DoNotCacheResponse)
	require.True(t, ok)
	assert.Equal(t, "one", wrapped.Payload.(*types.Deployment).Name)
}

func TestGetDeploymentHandlerErrors(t *testing.T) {
	rctx := handlerContext(t, "http://omk.test/", map[string]string{"deployment": "two"})
	res := GetDeployment(rctx.Request, rctx)
	assert.Equal(t, common.ErrCodeNotFound, res.(*api.ErrorResponse).InternalCode)

	rctx = handlerContext(t, "http://omk.test/", map[string]string{"deployment": ".."})
	res = GetDeployment(rctx.Request, rctx)
	assert.Equal(t, common.ErrCodeBadRequest, res.(*api.ErrorResponse).InternalCode)
}

func TestListDeploymentsHandlerError(t *testing.T) {
	rctx := handlerContext(t, "http://omk.test/", nil)

	// A file where the deployments directory should be
	root := rctx.Config.Deployments.RootPath()
	require.NoError(t, os.RemoveAll(root))
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0644))

	res := ListDeployments(rctx.Request, rctx)
	assert.Equal(t, common.ErrCodeUnknown, res.(*api.ErrorResponse).InternalCode)
}
