package custom

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/controllers/deployment_controller"
	"github.com/openmapkit/deployment-repo/util"
	"github.com/sirupsen/logrus"
)

func catalogFor(rctx rcontext.RequestContext) *deployment_controller.Catalog {
	return deployment_controller.NewCatalog(rctx.Config.Deployments, deployment_controller.OsFilesystem, util.RequestLocator{})
}

func ListDeployments(r *http.Request, rctx rcontext.RequestContext) interface{} {
	deployments, err := catalogFor(rctx).ListDeployments(rctx)
	if err != nil {
		return api.ErrorFor(rctx, err)
	}

	valid, invalid := deployment_controller.CountByValidity(deployments)
	rctx.Log.WithFields(logrus.Fields{
		"valid":   valid,
		"invalid": invalid,
	}).Info("Listed deployments")

	return &api.DoNotCacheResponse{Payload: deployments}
}

func GetDeployment(r *http.Request, rctx rcontext.RequestContext) interface{} {
	params := mux.Vars(r)
	name := params["deployment"]

	rctx = rctx.LogWithFields(logrus.Fields{
		"deployment": name,
	})

	deployment, err := catalogFor(rctx).GetDeployment(rctx, name)
	if err != nil {
		return api.ErrorFor(rctx, err)
	}

	return &api.DoNotCacheResponse{Payload: deployment}
}
