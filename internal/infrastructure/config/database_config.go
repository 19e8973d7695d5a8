package config

import (
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MinConnections int
	MaxLifetime    time.Duration
	MaxIdleTime    time.Duration
	HealthCheck    time.Duration
}

func setDatabaseDefaults() {
	viper.SetDefault("database_max_connections", 25)
	viper.SetDefault("database_min_connections", 5)
	viper.SetDefault("database_max_lifetime", 1*time.Hour)
	viper.SetDefault("database_max_idle_time", 30*time.Minute)
	viper.SetDefault("database_health_check", 30*time.Second)
}
