// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL      string `yaml:"redis_url" env:"REDIS_URL"`
	ListenAddr    string `yaml:"listen_addr" env:"LISTEN_ADDR"`

	// Paths
	AuthStatePath string `yaml:"auth_state_path"`

	// Collector pacing
	Headless        bool `yaml:"headless"`
	KeywordDelayMS  int  `yaml:"keyword_delay_ms"`
	CategoryDelayMS int  `yaml:"category_delay_ms"`

	// Alerts
	AlertDelayMS         int `yaml:"alert_delay_ms"`
	AlertCooldownMinutes int `yaml:"alert_cooldown_minutes"`
	AlertBatchCap        int `yaml:"alert_batch_cap"`
}

// Load reads the YAML config file (if present), then overrides with
// environment variables and fills in defaults. A missing required value is a
// startup error, not a runtime one.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Headless: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	// Set default values if not set
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8081"
	}
	if cfg.AuthStatePath == "" {
		cfg.AuthStatePath = "data/auth.json"
	}
	if cfg.KeywordDelayMS == 0 {
		cfg.KeywordDelayMS = 1200
	}
	if cfg.CategoryDelayMS == 0 {
		cfg.CategoryDelayMS = 5000
	}
	if cfg.AlertDelayMS == 0 {
		cfg.AlertDelayMS = 500
	}
	if cfg.AlertCooldownMinutes == 0 {
		cfg.AlertCooldownMinutes = 60
	}
	if cfg.AlertBatchCap == 0 {
		cfg.AlertBatchCap = 5
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg, nil
}
