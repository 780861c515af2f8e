package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/openmapkit/deployment-repo/cmd/utilities/common"
	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/logging"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/controllers/deployment_controller"
	"github.com/openmapkit/deployment-repo/util"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "The path to the configuration. When empty, only the flags below are used.")
	publicDir := flag.String("publicDir", "", "Overrides the public directory containing the deployments folder.")
	baseUrl := flag.String("baseUrl", "", "The base URL to build download links with, such as https://omk.example.org")
	outputFormat := flag.String("format", "table", "The output format. May be 'table' or 'json'.")
	outputFile := flag.String("output", "-", "The file to write to, or '-' for stdout.")
	flag.Parse()

	_ = godotenv.Load()

	if *configPath == "" {
		*configPath = os.Getenv("REPO_CONFIG")
	}

	cfg := config.NewDefaultMainConfig()
	if *configPath != "" {
		config.Path = *configPath
		cfg = *config.Get()
	}
	if *publicDir != "" {
		cfg.Deployments.PublicDir = *publicDir
	}
	if *baseUrl != "" {
		cfg.Urls.PublicBaseUrl = *baseUrl
	}

	// Logs go to stderr so stdout stays clean for the catalog
	if err := logging.Setup("", false, false, "warn"); err != nil {
		panic(err)
	}
	logrus.SetOutput(os.Stderr)

	ctx := rcontext.FromConfig(context.Background(), cfg, logrus.WithField("utility", "list_deployments"))
	catalog := deployment_controller.NewCatalog(cfg.Deployments, deployment_controller.OsFilesystem, util.RequestLocator{})

	deployments, err := catalog.ListDeployments(ctx)
	if err != nil {
		logrus.Fatal(err)
	}

	b, err := common.EncodeCatalog(deployments, *outputFormat, time.Now())
	if err != nil {
		logrus.Fatalf("%v. Try '%s -help' for information.", err, os.Args[0])
	}

	if err = common.WriteOutput(b, *outputFile); err != nil {
		logrus.Fatal(err)
	}
}
