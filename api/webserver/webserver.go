package webserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/didip/tollbooth"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/api/custom"
	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/limits"
	"github.com/openmapkit/deployment-repo/util"
	"github.com/sirupsen/logrus"
)

type route struct {
	method  string
	handler handler
}

var srv *http.Server
var waitGroup = &sync.WaitGroup{}
var srvLock = &sync.Mutex{}

func buildRoutes() http.Handler {
	rtr := mux.NewRouter()
	counter := &requestCounter{}
	urls := config.Get().Urls

	optionsHandler := handler{api.EmptyResponseHandler, "options_request", counter}
	listDeploymentsHandler := handler{custom.ListDeployments, "list_deployments", counter}
	getDeploymentHandler := handler{custom.GetDeployment, "get_deployment", counter}
	publicFileHandler := handler{custom.GetPublicFile, "public_file", counter}
	versionHandler := handler{custom.GetVersion, "version", counter}
	healthzHandler := handler{custom.GetHealthz, "healthz", counter}

	apiPrefix := "/" + util.MakeUrl(urls.ApiPrefix)
	publicPrefix := "/" + util.MakeUrl(urls.PublicPrefix)

	routes := make(map[string]route)
	routes[apiPrefix+"/deployments"] = route{"GET", listDeploymentsHandler}
	routes[apiPrefix+"/deployments/{deployment}"] = route{"GET", getDeploymentHandler}
	routes[apiPrefix+"/version"] = route{"GET", versionHandler}

	for routePath, route := range routes {
		logrus.Info("Registering route: " + route.method + " " + routePath)
		rtr.Handle(routePath, route.handler).Methods(route.method)
		rtr.Handle(routePath, optionsHandler).Methods("OPTIONS")

		// This is a hack to a ensure that trailing slashes also match the routes correctly
		rtr.Handle(routePath+"/", route.handler).Methods(route.method)
		rtr.Handle(routePath+"/", optionsHandler).Methods("OPTIONS")
	}

	// Public files keep their own trailing slash semantics, so they're registered separately
	logrus.Info("Registering route: GET " + publicPrefix + "/{path:.*}")
	rtr.Handle(publicPrefix, publicFileHandler).Methods("GET", "HEAD")
	rtr.Handle(publicPrefix, optionsHandler).Methods("OPTIONS")
	rtr.Handle(publicPrefix+"/{path:.*}", publicFileHandler).Methods("GET", "HEAD")
	rtr.Handle(publicPrefix+"/{path:.*}", optionsHandler).Methods("OPTIONS")

	// Health check endpoints
	rtr.Handle("/healthz", healthzHandler).Methods("OPTIONS", "GET")

	rtr.NotFoundHandler = handler{api.NotFoundHandler, "not_found", counter}
	rtr.MethodNotAllowedHandler = handler{api.MethodNotAllowedHandler, "method_not_allowed", counter}

	return rtr
}

func withRateLimit(next http.Handler) http.Handler {
	if !config.Get().RateLimit.Enabled {
		return next
	}

	logrus.Info("Enabling rate limit")
	return tollbooth.LimitHandler(limits.GetRequestLimiter(), next)
}

// Init starts the web server in the background. The returned wait group is
// released by Stop.
func Init() *sync.WaitGroup {
	address := net.JoinHostPort(config.Get().General.BindAddress, strconv.Itoa(config.Get().General.Port))

	handler := withRateLimit(buildRoutes())

	// Note: we bind Sentry here to ensure we capture *everything*
	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	server := &http.Server{Addr: address, Handler: sentryHandler.Handle(handler)}

	srvLock.Lock()
	srv = server
	srvLock.Unlock()

	go func() {
		//goland:noinspection HttpUrlsUsage
		logrus.WithField("address", address).Info("Started up. Listening at http://" + address)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			logrus.Fatal(err)
		}
	}()

	return waitGroup
}

func Reload() {
	// Stop the server first, without releasing anyone waiting on us
	shutdown()

	// Reload the web server, ignoring the wait group (because we don't care to wait here)
	Init()
}

func Stop() {
	shutdown()
	waitGroup.Done()
}

func shutdown() {
	srvLock.Lock()
	defer srvLock.Unlock()

	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Error("Error stopping web server: ", err)
		sentry.CaptureException(err)
	}
	srv = nil
}
