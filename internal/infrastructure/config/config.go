package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	StoreGateway StoreGatewayConfig
	Events       EventsConfig
	Sentry       SentryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// JWTConfig holds JWT validation configuration. Tokens are issued by the
// main RaceDay backend; this service only verifies them.
type JWTConfig struct {
	Secret string
	Issuer string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PoolSize int
}

// StoreGatewayConfig holds the platform store gateway connection settings
type StoreGatewayConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	CatalogTTL time.Duration
}

// EventsConfig holds purchase-event telemetry settings
type EventsConfig struct {
	Retention time.Duration
}

// SentryConfig holds Sentry configuration
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env file is optional; production relies on env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_read_timeout", 10*time.Second)
	viper.SetDefault("server_write_timeout", 10*time.Second)
	viper.SetDefault("server_shutdown_timeout", 30*time.Second)

	// JWT defaults
	viper.SetDefault("jwt_issuer", "raceday")

	// Redis defaults
	viper.SetDefault("redis_pool_size", 10)

	// Store gateway defaults
	viper.SetDefault("storegateway_timeout", 30*time.Second)
	viper.SetDefault("storegateway_catalog_ttl", 1*time.Hour)

	// Telemetry retention
	viper.SetDefault("events_retention", 90*24*time.Hour)

	// Database pool defaults
	setDatabaseDefaults()
}

func validate(cfg *Config) error {
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if cfg.StoreGateway.BaseURL == "" {
		return fmt.Errorf("STOREGATEWAY_BASEURL is required")
	}
	return nil
}
