package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// Config holds application configuration aggregated from the environment and an optional .env file.
type Config struct {
	Server struct {
		Port       string `mapstructure:"port"`
		Env        string `mapstructure:"env"`
		CORSOrigin string `mapstructure:"cors_origin"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Session struct {
		Secret   string `mapstructure:"secret"`
		TTLHours int    `mapstructure:"ttl_hours"`
		Store    string `mapstructure:"store"`
		RedisURL string `mapstructure:"redis_url"`
	} `mapstructure:"session"`
	RateLimit struct {
		// AuthPerMinute caps register and login calls per client IP; 0 disables the limit.
		AuthPerMinute int `mapstructure:"auth_per_minute"`
		AuthBurst     int `mapstructure:"auth_burst"`
	} `mapstructure:"rate_limit"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Events struct {
		// AMQPURL enables loan event publishing to RabbitMQ when set.
		AMQPURL string `mapstructure:"amqp_url"`
	} `mapstructure:"events"`
	// AdminEmail is registered with the admin role instead of user.
	AdminEmail string `mapstructure:"admin_email"`
}

var envBindings = map[string]string{
	"server.port":                "SERVER_PORT",
	"server.env":                 "APP_ENV",
	"server.cors_origin":         "CORS_ORIGIN",
	"database.url":               "DATABASE_URL",
	"session.secret":             "SESSION_SECRET",
	"session.ttl_hours":          "SESSION_TTL_HOURS",
	"session.store":              "SESSION_STORE",
	"session.redis_url":          "REDIS_URL",
	"log.level":                  "LOG_LEVEL",
	"events.amqp_url":            "AMQP_URL",
	"rate_limit.auth_per_minute": "AUTH_RATE_PER_MINUTE",
	"rate_limit.auth_burst":      "AUTH_RATE_BURST",
	"admin_email":                "ADMIN_EMAIL",
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origin", "http://localhost:5173")
	v.SetDefault("session.ttl_hours", 24)
	v.SetDefault("session.store", SessionStorePostgres)
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.auth_per_minute", 30)
	v.SetDefault("rate_limit.auth_burst", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and their formats.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL not set in environment")
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("SESSION_SECRET not set in environment")
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.Session.TTLHours)
	}
	if c.RateLimit.AuthPerMinute < 0 || c.RateLimit.AuthBurst < 0 {
		return fmt.Errorf("AUTH_RATE_PER_MINUTE and AUTH_RATE_BURST must not be negative")
	}
	if c.RateLimit.AuthPerMinute > 0 && c.RateLimit.AuthBurst < 1 {
		return fmt.Errorf("AUTH_RATE_BURST must be at least 1 when AUTH_RATE_PER_MINUTE is set")
	}
	switch c.Session.Store {
	case SessionStorePostgres:
	case SessionStoreRedis:
		if strings.TrimSpace(c.Session.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (want postgres or redis)", c.Session.Store)
	}
	return nil
}

// IsProduction reports whether the server runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// SessionTTL is the lifetime of a login session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}
