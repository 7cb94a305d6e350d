// Package config loads client configuration from the environment, with
// an optional .env file for development.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// BaseURL is the ContractPro backend root, including the API prefix.
	BaseURL string `env:"CONTRACTPRO_BASE_URL" envDefault:"http://localhost:8000/api"`

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `env:"CONTRACTPRO_TIMEOUT" envDefault:"30s"`

	// StateFile holds the persisted session (token + principal).
	// Defaults to session.json under the user config directory.
	StateFile string `env:"CONTRACTPRO_STATE_FILE"`

	// DownloadDir receives contract documents, archive files and report
	// exports. Defaults to the working directory.
	DownloadDir string `env:"CONTRACTPRO_DOWNLOAD_DIR" envDefault:"."`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"CONTRACTPRO_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present), then the environment, then applies
// guardrails.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.Sanitize()
	return cfg, nil
}

// Sanitize applies guardrails to loaded values.
func (c *Config) Sanitize() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.StateFile == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		c.StateFile = filepath.Join(base, "contractpro", "session.json")
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "."
	}
}
