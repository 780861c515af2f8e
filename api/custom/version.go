package custom

import (
	"net/http"

	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/common/version"
)

func GetVersion(r *http.Request, rctx rcontext.RequestContext) interface{} {
	version.SetDefaults()
	return &api.DoNotCacheResponse{
		Payload: map[string]interface{}{
			"Version":    version.Version,
			"GitCommit":  version.GitCommit,
			"file_kinds": common.AllKinds,
		},
	}
}
