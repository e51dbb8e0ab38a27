package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger        Logger     `yaml:"logger"`
	HttpClient    HttpClient `yaml:"http_client"`
	GitClient     GitClient  `yaml:"git_client"`
	Scanner       Scanner    `yaml:"scanner"`
	Uploader      Uploader   `yaml:"uploader"`
	S3            S3         `yaml:"s3"`
	ArtifactsHome string     `yaml:"artifacts_home"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type HttpClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type GitClient struct {
	Depth       int           `yaml:"depth"`
	Timeout     time.Duration `yaml:"timeout"`
	InsecureTLS *bool         `yaml:"insecure_tls"`
}

// Scanner settings gate when and on what the scan command runs the detector;
// none of them change detection behavior itself.
type Scanner struct {
	Threads        int           `yaml:"threads"`
	Exclude        []string      `yaml:"exclude"`
	RescanInterval time.Duration `yaml:"rescan_interval"`
	RescanOnSave   *bool         `yaml:"rescan_on_save"`
	MaxFileSize    int64         `yaml:"max_file_size"`
}

type Uploader struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type S3 struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML config at configPath. A missing file is not an
// error: every setting has a usable default, so the tool runs unconfigured.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(configPath, &config); err != nil {
		return nil, err
	}

	return config, nil
}
