package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to a documented env var.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Central DukaPOS API
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	APITimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`

	// Durable session storage: "file" for a standalone till,
	// "redis" for shared front-of-house installs.
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	SessionFile    string `mapstructure:"SESSION_FILE"`
	RedisURL       string `mapstructure:"REDIS_URL"`

	// Receipts
	ReceiptDir    string `mapstructure:"RECEIPT_DIR"`
	PrintPoolSize int    `mapstructure:"PRINT_POOL_SIZE"`
	BusinessName  string `mapstructure:"BUSINESS_NAME"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults so the binary runs on a bare till
	viper.SetDefault("PORT", 8700)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("SESSION_FILE", "dukapos_session.json")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("RECEIPT_DIR", "/tmp/dukapos/receipts")
	viper.SetDefault("PRINT_POOL_SIZE", 2)
	viper.SetDefault("BUSINESS_NAME", "DukaPOS")

	// Optional .env file for local development; a missing file is fine
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.StorageBackend != "file" && cfg.StorageBackend != "redis" {
		return nil, errors.New("config: STORAGE_BACKEND must be \"file\" or \"redis\"")
	}
	return cfg, nil
}
