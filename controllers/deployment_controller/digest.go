package deployment_controller

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/metrics"
	"github.com/openmapkit/deployment-repo/types"
	"github.com/prometheus/client_golang/prometheus"
)

const MissingManifestMessage = "Unable to find manifest file."

// Digest turns the listing of one deployment directory into its descriptor.
// Directories without a manifest are reported as invalid rather than failing.
// A stat error on any child is returned as-is.
func (c *Catalog) Digest(ctx rcontext.RequestContext, dirName string, contents []string) (*types.Deployment, error) {
	if !hasManifest(contents) {
		ctx.Log.Debugf("No %s in deployment %s", common.ManifestFileName, dirName)
		metrics.DeploymentsDigested.With(prometheus.Labels{"valid": "false"}).Inc()
		return &types.Deployment{
			Name:    dirName,
			Valid:   false,
			Message: MissingManifestMessage,
		}, nil
	}

	files := make(map[string][]*types.DeploymentFile, len(common.AllKinds))
	for _, kind := range common.AllKinds {
		files[kind] = make([]*types.DeploymentFile, 0)
	}

	// URL paths are always slash separated, regardless of the host OS
	relDir := path.Join(c.parentDir, dirName)
	deployment := &types.Deployment{
		Name:       dirName,
		Valid:      true,
		Files:      files,
		Url:        c.locator.ApiUrl(ctx, relDir),
		ListingUrl: c.locator.PublicDirFileUrl(ctx, c.parentDir, dirName),
	}

	for _, item := range contents {
		info, err := c.filesystem.Stat(filepath.Join(c.root, dirName, item))
		if err != nil {
			return nil, err
		}

		// Deployments are not scanned recursively
		if info.IsDir() {
			continue
		}

		kind := extensionOf(item)
		if !common.IsKnownKind(kind) {
			continue
		}

		files[kind] = append(files[kind], &types.DeploymentFile{
			Name:         item,
			DownloadUrl:  c.locator.PublicDirFileUrl(ctx, relDir, item),
			SizeBytes:    info.Size(),
			LastModified: info.ModTime().UTC(),
		})
	}

	metrics.DeploymentsDigested.With(prometheus.Labels{"valid": "true"}).Inc()
	return deployment, nil
}

func hasManifest(contents []string) bool {
	for _, item := range contents {
		if item == common.ManifestFileName {
			return true
		}
	}
	return false
}

// extensionOf returns the case-sensitive text after the last dot, or "" when
// the name has no dot.
func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
