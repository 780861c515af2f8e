package deployment_controller

import (
	"github.com/openmapkit/deployment-repo/common/rcontext"
)

// Locator builds the externally visible URLs placed in deployment descriptors.
type Locator interface {
	ApiUrl(ctx rcontext.RequestContext, relPath string) string
	PublicDirFileUrl(ctx rcontext.RequestContext, relDir string, name string) string
}
