package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected a zero-valued config, got nil")
	}
}

func TestLoadConfigParsesScannerSection(t *testing.T) {
	content := `
logger:
  level: debug
scanner:
  threads: 8
  exclude:
    - "*.min.js"
    - "vendor/*"
  rescan_interval: 5m
uploader:
  url: https://results.example.com
  token: secret
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("expected logger level debug, got %q", cfg.Logger.Level)
	}
	if cfg.Scanner.Threads != 8 {
		t.Errorf("expected 8 threads, got %d", cfg.Scanner.Threads)
	}
	if len(cfg.Scanner.Exclude) != 2 || cfg.Scanner.Exclude[0] != "*.min.js" {
		t.Errorf("unexpected exclude globs: %v", cfg.Scanner.Exclude)
	}
	if cfg.Scanner.RescanInterval != 5*time.Minute {
		t.Errorf("expected 5m rescan interval, got %v", cfg.Scanner.RescanInterval)
	}
	if cfg.Uploader.URL != "https://results.example.com" {
		t.Errorf("unexpected uploader url: %q", cfg.Uploader.URL)
	}
}

func TestSetThen(t *testing.T) {
	if got := SetThen(0, DefaultScanThreads); got != DefaultScanThreads {
		t.Errorf("expected default for zero value, got %d", got)
	}
	if got := SetThen(12, DefaultScanThreads); got != 12 {
		t.Errorf("expected explicit value to win, got %d", got)
	}
}

func TestGetBoolValue(t *testing.T) {
	verify := false
	cfg := &Config{HttpClient: HttpClient{TlsClientConfig: TlsClientConfig{Verify: &verify}}}

	if GetBoolValue(cfg, "HttpClient.TlsClientConfig.Verify", true) {
		t.Error("explicit false should override the default")
	}
	if !GetBoolValue(&Config{}, "HttpClient.TlsClientConfig.Verify", true) {
		t.Error("unset value should fall back to the default")
	}
}
