package main

import (
	"context"

	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/controllers/deployment_controller"
	"github.com/openmapkit/deployment-repo/metrics"
	"github.com/openmapkit/deployment-repo/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// countDeploymentsOnDisk refreshes the on-disk gauge right before a scrape.
func countDeploymentsOnDisk() {
	cfg := *config.Get()
	ctx := rcontext.FromConfig(context.Background(), cfg, logrus.WithField("task", "metrics_gauge"))

	catalog := deployment_controller.NewCatalog(cfg.Deployments, deployment_controller.OsFilesystem, util.RequestLocator{})
	deployments, err := catalog.ListDeployments(ctx)
	if err != nil {
		ctx.Log.Warn("Unable to count deployments: ", err)
		return
	}

	valid, invalid := deployment_controller.CountByValidity(deployments)
	metrics.DeploymentsOnDisk.With(prometheus.Labels{"valid": "true"}).Set(float64(valid))
	metrics.DeploymentsOnDisk.With(prometheus.Labels{"valid": "false"}).Set(float64(invalid))
}
