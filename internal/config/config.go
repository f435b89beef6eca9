package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI configuration.
type Config struct {
	API struct {
		BaseURL  string `yaml:"base_url"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"api"`
	TimeoutSec int    `yaml:"timeout_sec"`
	LogLevel   string `yaml:"log_level"`
}

func Default() Config {
	cfg := Config{}
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.TimeoutSec = 15
	cfg.LogLevel = "info"
	return cfg
}

// Load reads YAML config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override file values so
// credentials can stay out of the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("modectl.yaml"); err == nil {
			path = "modectl.yaml"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MODE_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("MODE_API_EMAIL"); v != "" {
		cfg.API.Email = v
	}
	if v := os.Getenv("MODE_API_PASSWORD"); v != "" {
		cfg.API.Password = v
	}
	if v := os.Getenv("MODE_API_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.TimeoutSec = x
		}
	}
	if v := os.Getenv("MODE_API_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
