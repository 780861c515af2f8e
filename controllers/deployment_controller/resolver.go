package deployment_controller

import (
	"path/filepath"
	"strings"

	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/types"
)

// GetDeployment digests a single deployment by name. Unlike ListDeployments,
// a missing directory (or a missing root) is always an error.
func (c *Catalog) GetDeployment(ctx rcontext.RequestContext, name string) (*types.Deployment, error) {
	if !IsValidName(name) {
		return nil, common.ErrInvalidDeploymentName
	}

	dirPath := filepath.Join(c.root, name)
	if _, err := c.filesystem.Stat(dirPath); err != nil {
		return nil, err
	}

	contents, err := c.filesystem.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	return c.Digest(ctx, name, contents)
}

// IsValidName reports whether name can only refer to a direct child of the
// deployments root.
func IsValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
