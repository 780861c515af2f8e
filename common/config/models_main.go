package config

type GeneralConfig struct {
	BindAddress      string `yaml:"bindAddress"`
	Port             int    `yaml:"port"`
	LogDirectory     string `yaml:"logDirectory"`
	LogColors        bool   `yaml:"logColors"`
	JsonLogs         bool   `yaml:"jsonLogs"`
	LogLevel         string `yaml:"logLevel"`
	TrustAnyForward  bool   `yaml:"trustAnyForwardedAddress"`
	UseForwardedHost bool   `yaml:"useForwardedHost"`
}

type DeploymentsConfig struct {
	// PublicDir is the absolute directory served under UrlsConfig.PublicPrefix.
	PublicDir string `yaml:"publicDir"`
	// ParentDir is the subdirectory of PublicDir holding one directory per deployment.
	ParentDir string `yaml:"parentDir"`
	// MaxConcurrency caps filesystem fan-out while building the catalog. 0 is unbounded.
	MaxConcurrency int `yaml:"maxConcurrency"`
}

type UrlsConfig struct {
	PublicBaseUrl string `yaml:"publicBaseUrl"`
	ApiPrefix     string `yaml:"apiPrefix"`
	PublicPrefix  string `yaml:"publicPrefix"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Enabled           bool    `yaml:"enabled"`
	BurstCount        int     `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}
