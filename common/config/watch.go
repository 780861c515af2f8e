package config

import (
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/openmapkit/deployment-repo/common/globals"
	"github.com/sirupsen/logrus"
)

func Watch() *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logrus.Fatal(err)
	}

	err = watcher.Add(Path)
	if err != nil {
		logrus.Fatal(err)
	}

	go func() {
		debounced := debounce.New(1 * time.Second)
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				debounced(onFileChanged)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Error("error in config watcher:", err)
			}
		}
	}()

	return watcher
}

func onFileChanged() {
	logrus.Info("Config file change detected - reloading")
	configNow := Get()
	configNew, err := reloadConfig()
	if err != nil {
		logrus.Error("Error reloading configuration - ignoring")
		logrus.Error(err)
		return
	}

	logrus.Info("Applying reloaded config live")
	Set(configNew)

	if webserverNeedsRemount(configNow, configNew) {
		logrus.Warn("Webserver configuration changed - remounting")
		globals.WebReloadChan <- true
	}

	metricsEnableChange := configNew.Metrics.Enabled != configNow.Metrics.Enabled
	metricsBindAddressChange := configNew.Metrics.BindAddress != configNow.Metrics.BindAddress
	metricsBindPortChange := configNew.Metrics.Port != configNow.Metrics.Port
	if metricsEnableChange || metricsBindAddressChange || metricsBindPortChange {
		logrus.Warn("Metrics configuration changed - remounting")
		globals.MetricsReloadChan <- true
	}

	logChange := configNew.General.LogDirectory != configNow.General.LogDirectory
	logChange = logChange || configNew.General.JsonLogs != configNow.General.JsonLogs
	logChange = logChange || configNew.General.LogLevel != configNow.General.LogLevel
	if logChange {
		logrus.Warn("Log configuration changed - restart the deployment repo to apply changes")
	}

	// Deployment settings are read per request, so they need no remount.
	if configNew.Deployments != configNow.Deployments {
		logrus.WithField("root", configNew.Deployments.RootPath()).Info("Deployment root configuration changed")
	}
}

func webserverNeedsRemount(configNow *MainRepoConfig, configNew *MainRepoConfig) bool {
	bindAddressChange := configNew.General.BindAddress != configNow.General.BindAddress
	bindPortChange := configNew.General.Port != configNow.General.Port
	forwardAddressChange := configNew.General.TrustAnyForward != configNow.General.TrustAnyForward
	forwardedHostChange := configNew.General.UseForwardedHost != configNow.General.UseForwardedHost
	prefixChange := configNew.Urls.ApiPrefix != configNow.Urls.ApiPrefix || configNew.Urls.PublicPrefix != configNow.Urls.PublicPrefix
	rateLimitChange := configNew.RateLimit != configNow.RateLimit
	return bindAddressChange || bindPortChange || forwardAddressChange || forwardedHostChange || prefixChange || rateLimitChange
}
