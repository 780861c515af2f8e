package config

import (
	"path/filepath"
)

type MainRepoConfig struct {
	General     GeneralConfig     `yaml:"repo"`
	Deployments DeploymentsConfig `yaml:"deployments"`
	Urls        UrlsConfig        `yaml:"urls"`
	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Sentry      SentryConfig      `yaml:"sentry"`
}

func NewDefaultMainConfig() MainRepoConfig {
	return MainRepoConfig{
		General: GeneralConfig{
			BindAddress:      "127.0.0.1",
			Port:             3210,
			LogDirectory:     "logs",
			LogColors:        false,
			JsonLogs:         false,
			LogLevel:         "info",
			TrustAnyForward:  false,
			UseForwardedHost: true,
		},
		Deployments: DeploymentsConfig{
			PublicDir:      "/opt/data/public",
			ParentDir:      "deployments",
			MaxConcurrency: 0,
		},
		Urls: UrlsConfig{
			PublicBaseUrl: "",
			ApiPrefix:     "/omk/api",
			PublicPrefix:  "/omk/data",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			BurstCount:        10,
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "localhost",
			Port:        9000,
		},
		Sentry: SentryConfig{
			Enabled:     false,
			Dsn:         "not supplied",
			Environment: "",
			Debug:       false,
		},
	}
}

// RootPath is the directory whose immediate subdirectories are deployments.
func (c DeploymentsConfig) RootPath() string {
	return filepath.Join(c.PublicDir, c.ParentDir)
}
