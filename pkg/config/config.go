package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRetryLimit = 10
	DefaultRetryDelay = time.Second
)

type Config struct {
	CatalogDir string `yaml:"catalog_dir"`
	RetryLimit int    `yaml:"retry_limit"`
	RetryDelay string `yaml:"retry_delay"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	LogFile    string `yaml:"log_file,omitempty"`
}

func Default() *Config {
	return &Config{
		RetryLimit: DefaultRetryLimit,
		RetryDelay: DefaultRetryDelay.String(),
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".scengen")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// applyEnv fills the catalog directory from SCENGEN_CATALOG when the file
// leaves it empty.
func (c *Config) applyEnv() {
	if c.CatalogDir == "" {
		c.CatalogDir = os.Getenv("SCENGEN_CATALOG")
	}
}

// RetryDelayDuration parses RetryDelay, falling back to the default.
func (c *Config) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil || d < 0 {
		return DefaultRetryDelay
	}
	return d
}
