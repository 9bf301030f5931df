// Package config handles application configuration loading. Values come
// from environment variables, an optional config file and development
// defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	SessionTTL time.Duration
	LogLevel   string

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that sets those headers.
	TrustProxy bool
}

// defaultDBPassword is refused in production.
const defaultDBPassword = "changeme"

var defaults = map[string]any{
	"app_host":          "0.0.0.0",
	"app_port":          "8080",
	"app_env":           "development",
	"postgres_host":     "localhost",
	"postgres_port":     "5432",
	"postgres_user":     "blogpress",
	"postgres_password": defaultDBPassword,
	"postgres_db":       "blogpress",
	"valkey_host":       "localhost",
	"valkey_port":       "6379",
	"valkey_password":   "",
	"session_ttl":       "24h",
	"log_level":         "info",
	"trust_proxy":       false,
}

// Load reads configuration, applying defaults for development where
// appropriate. configFile is optional; when set it must exist and may use
// any format viper understands (YAML, TOML, JSON, dotenv). Environment
// variables always win over the file. Returns an error if critical values
// are missing in production mode.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config read %s: %w", configFile, err)
		}
	}

	ttl, err := time.ParseDuration(v.GetString("session_ttl"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", v.GetString("session_ttl"))
	}

	cfg := &Config{
		Host: v.GetString("app_host"),
		Port: v.GetString("app_port"),
		Env:  v.GetString("app_env"),

		DBHost:     v.GetString("postgres_host"),
		DBPort:     v.GetString("postgres_port"),
		DBUser:     v.GetString("postgres_user"),
		DBPassword: v.GetString("postgres_password"),
		DBName:     v.GetString("postgres_db"),

		ValkeyHost:     v.GetString("valkey_host"),
		ValkeyPort:     v.GetString("valkey_port"),
		ValkeyPassword: v.GetString("valkey_password"),

		SessionTTL: ttl,
		LogLevel:   strings.ToLower(v.GetString("log_level")),
		TrustProxy: v.GetBool("trust_proxy"),
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultDBPassword {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return level, nil
}
