package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Unpopular UnpopularConfig `yaml:"unpopular"`
	LogFile   string          `yaml:"log_file,omitempty"`
}

type ServerConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type DefaultsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// UnpopularConfig holds the relaxed peer timeouts applied when the user
// marks a torrent as unpopular in the add dialog.
type UnpopularConfig struct {
	ConnectTimeoutSeconds   int `yaml:"connect_timeout_seconds"`
	ReadWriteTimeoutSeconds int `yaml:"read_write_timeout_seconds"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:3030",
			TimeoutSeconds: 30,
		},
		Defaults: DefaultsConfig{
			OutputDir: filepath.Join(home, "downloads"),
		},
		Unpopular: UnpopularConfig{
			ConnectTimeoutSeconds:   20,
			ReadWriteTimeoutSeconds: 60,
		},
	}
}

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rqbit-tui", "config.yaml")
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if saveErr := Save(cfg, path); saveErr != nil {
				return nil, fmt.Errorf("creating default config: %w", saveErr)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(cfg *Config, path string) error {
	if path == "" {
		path = defaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func Validate(cfg *Config) error {
	if cfg.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	u, err := url.Parse(cfg.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url %q is not a valid URL", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = 30
	}
	if cfg.Unpopular.ConnectTimeoutSeconds <= 0 {
		cfg.Unpopular.ConnectTimeoutSeconds = 20
	}
	if cfg.Unpopular.ReadWriteTimeoutSeconds <= 0 {
		cfg.Unpopular.ReadWriteTimeoutSeconds = 60
	}
	return nil
}
