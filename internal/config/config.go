package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers.
const (
	StorageDriverS3    = "s3"
	StorageDriverLocal = "local"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Storage  StorageConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST, default=0.0.0.0"`
	Port int    `env:"SERVER_PORT, default=8080"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST, default=localhost"`
	Port            int    `env:"DB_PORT, default=5432"`
	User            string `env:"DB_USER, default=postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME, default=katalog"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS, default=25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS, default=5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME, default=300"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Format string `env:"LOG_FORMAT, default=json"` // "json" or "console"
}

// AuthConfig holds admin session configuration.
type AuthConfig struct {
	SessionTTL   time.Duration `env:"SESSION_TTL, default=24h"`
	CookieName   string        `env:"SESSION_COOKIE, default=katalog_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	LoginPath    string        `env:"LOGIN_PATH, default=/admin"`
}

// RedisConfig holds the session token store connection settings.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// StorageConfig holds object storage configuration for product images.
type StorageConfig struct {
	Driver          string `env:"STORAGE_DRIVER, default=local"` // "s3" or "local"
	Bucket          string `env:"STORAGE_BUCKET, default=produk-images"`
	Region          string `env:"STORAGE_REGION, default=us-east-1"`
	Endpoint        string `env:"STORAGE_ENDPOINT"` // S3-compatible endpoint, empty for AWS
	AccessKeyID     string `env:"STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"STORAGE_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"STORAGE_USE_PATH_STYLE, default=false"`
	PublicBaseURL   string `env:"STORAGE_PUBLIC_BASE_URL"`
	LocalDir        string `env:"STORAGE_LOCAL_DIR, default=data/images"`
	MaxUploadBytes  int64  `env:"ASSET_MAX_BYTES, default=5242880"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if c.Auth.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	switch c.Storage.Driver {
	case StorageDriverS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required when using the s3 driver")
		}
		if c.Storage.Region == "" {
			return fmt.Errorf("storage region is required when using the s3 driver")
		}
	case StorageDriverLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage local dir is required when using the local driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be s3 or local)", c.Storage.Driver)
	}

	if c.Storage.MaxUploadBytes < 1 {
		return fmt.Errorf("asset max bytes must be at least 1")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string. Credentials are
// escaped so they may contain URL delimiters.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
