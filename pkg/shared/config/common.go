package config

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"time"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	Timeout          time.Duration
	TLSClientConfig  *tls.Config
	Proxy            string
}

// RestyHttpClientConfig holds additional configuration settings for the resty http client.
type RestyHttpClientConfig struct {
	BaseHTTPConfig
	Debug bool
}

// DefaultHttpConfig returns the base configuration applicable to all HTTP clients.
func DefaultHttpConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount:       5,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 2 * time.Second,
		Timeout:          10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Proxy: "",
	}
}

// DefaultRestyConfig returns the http config specific to resty.
func DefaultRestyConfig() RestyHttpClientConfig {
	return RestyHttpClientConfig{
		BaseHTTPConfig: DefaultHttpConfig(),
		Debug:          false,
	}
}

const (
	DefaultScanThreads    = 4
	DefaultGitDepth       = 1
	DefaultGitTimeout     = 2 * time.Minute
	DefaultMaxFileSize    = 10 << 20 // 10 MiB
	DefaultRescanInterval = 10 * time.Minute
)

// GetArtifactsHome resolves the directory scan artifacts are written to:
// config value first, then the HCD_HOME environment variable, then
// ~/.hcd/artifacts.
func GetArtifactsHome(cfg *Config) string {
	if cfg != nil && cfg.ArtifactsHome != "" {
		return cfg.ArtifactsHome
	}
	if home := os.Getenv("HCD_HOME"); home != "" {
		return filepath.Join(home, "artifacts")
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".hcd", "artifacts")
	}
	return filepath.Join(userHome, ".hcd", "artifacts")
}
