package runtime

import (
	"errors"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/version"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func RunStartupSequence() {
	version.Print(true)
	CheckDeploymentRoot()
}

// CheckDeploymentRoot reports on the deployments directory. A missing root is
// not fatal: the catalog is simply empty until it appears.
func CheckDeploymentRoot() {
	root := config.Get().Deployments.RootPath()
	log := logrus.WithField("root", root)

	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("Deployment root does not exist yet, the catalog will be empty")
		return
	}
	if err != nil {
		sentry.CaptureException(err)
		log.Error("Deployment root cannot be read: ", err)
		return
	}
	if !info.IsDir() {
		log.Error("Deployment root is not a directory, listing deployments will fail")
		return
	}
	log.Info("Serving deployments")
}

func InitSentry() error {
	if !config.Get().Sentry.Enabled {
		return nil
	}

	logrus.Info("Setting up Sentry for debugging...")
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         config.Get().Sentry.Dsn,
		Environment: config.Get().Sentry.Environment,
		Debug:       config.Get().Sentry.Debug,
		Release:     version.Release(),
	})
	return pkgerrors.Wrap(err, "error setting up sentry")
}
