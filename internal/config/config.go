// Package config provides configuration management for the pool portal.
package config

import (
	"fmt"

	"github.com/yourusername/pool-portal/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage" validate:"required"`
	Categories []string         `mapstructure:"categories" validate:"required,min=1,categories"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP dashboard server configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	HealthPort     int      `mapstructure:"health_port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects and configures the record store backing the portal
type StorageConfig struct {
	Driver   string         `mapstructure:"driver" validate:"required,oneof=flatfile postgres"`
	DataDir  string         `mapstructure:"data_dir"`
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// AdminConfig gates the portal's write surface
type AdminConfig struct {
	Token string `mapstructure:"token"`
}

// PredictionConfig tunes the cached probability distribution
type PredictionConfig struct {
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RefreshSchedule string `mapstructure:"refresh_schedule" validate:"required"`
}

// FeedConfig configures the optional remote results feed import
type FeedConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	URL            string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	SyncSchedule   string  `mapstructure:"sync_schedule"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	LivePushEnabled bool `mapstructure:"live_push_enabled"`
	ImportEnabled   bool `mapstructure:"import_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CategorySet returns the configured categories as the typed, ordered closed
// set every engine call works over.
func (c *Config) CategorySet() []models.Category {
	out := make([]models.Category, len(c.Categories))
	for i, s := range c.Categories {
		out[i] = models.Category(s)
	}
	return out
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	db := c.Storage.Database
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}
