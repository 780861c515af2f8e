package deployment_controller

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/metrics"
	"github.com/openmapkit/deployment-repo/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Catalog lists and resolves the deployments found under one root directory.
// Nothing is cached: every call reads the filesystem again.
type Catalog struct {
	root           string
	parentDir      string
	maxConcurrency int
	filesystem     Filesystem
	locator        Locator
}

func NewCatalog(cfg config.DeploymentsConfig, filesystem Filesystem, locator Locator) *Catalog {
	return &Catalog{
		root:           cfg.RootPath(),
		parentDir:      cfg.ParentDir,
		maxConcurrency: cfg.MaxConcurrency,
		filesystem:     filesystem,
		locator:        locator,
	}
}

// ListDeployments builds the full catalog sorted by name. A missing root is an
// empty catalog. Any other I/O error aborts the whole build.
func (c *Catalog) ListDeployments(ctx rcontext.RequestContext) ([]*types.Deployment, error) {
	start := time.Now()
	deployments, err := c.buildCatalog(ctx)
	metrics.CatalogBuildTime.Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.CatalogBuilds.With(prometheus.Labels{"outcome": outcome}).Inc()
	return deployments, err
}

func (c *Catalog) buildCatalog(ctx rcontext.RequestContext) ([]*types.Deployment, error) {
	contents, err := c.filesystem.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.Log.Info("Deployment root does not exist yet: ", c.root)
			return make([]*types.Deployment, 0), nil
		}
		return nil, err
	}

	if len(contents) == 0 {
		return make([]*types.Deployment, 0), nil
	}

	dirNames, err := c.filterDirectories(ctx, contents)
	if err != nil {
		return nil, err
	}

	listings, err := c.readDirectories(ctx, dirNames)
	if err != nil {
		return nil, err
	}

	deployments := make([]*types.Deployment, 0, len(dirNames))
	for i, dirName := range dirNames {
		deployment, err := c.Digest(ctx, dirName, listings[i])
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, deployment)
	}

	sortDeployments(deployments)
	ctx.Log.WithFields(logrus.Fields{
		"entries":     len(contents),
		"deployments": len(deployments),
	}).Debug("Built deployment catalog")
	return deployments, nil
}

// filterDirectories probes every top level entry and keeps the directories,
// preserving enumeration order.
func (c *Catalog) filterDirectories(ctx rcontext.RequestContext, contents []string) ([]string, error) {
	isDir := make([]bool, len(contents))
	err := c.fanOut(ctx, len(contents), func(i int) error {
		info, err := c.filesystem.Stat(filepath.Join(c.root, contents[i]))
		if err != nil {
			return err
		}
		isDir[i] = info.IsDir()
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirNames := make([]string, 0, len(contents))
	for i, name := range contents {
		if isDir[i] {
			dirNames = append(dirNames, name)
		}
	}
	return dirNames, nil
}

func (c *Catalog) readDirectories(ctx rcontext.RequestContext, dirNames []string) ([][]string, error) {
	listings := make([][]string, len(dirNames))
	err := c.fanOut(ctx, len(dirNames), func(i int) error {
		listing, err := c.filesystem.ReadDir(filepath.Join(c.root, dirNames[i]))
		if err != nil {
			return err
		}
		listings[i] = listing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// fanOut runs fn for 0..n-1 concurrently and waits for all of them. The first
// error is returned and stops work that has not started yet. Each fn must only
// write to its own index.
func (c *Catalog) fanOut(ctx rcontext.RequestContext, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx.Context)
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}

func sortDeployments(deployments []*types.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		return deployments[i].Name < deployments[j].Name
	})
}

// CountByValidity splits a catalog into valid and invalid counts.
func CountByValidity(deployments []*types.Deployment) (valid int, invalid int) {
	for _, d := range deployments {
		if d.Valid {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}
