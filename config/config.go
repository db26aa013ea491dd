// config/config.go - Application configuration (.env + optional TOML file)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port          string `koanf:"port"`
	AppEnv        string `koanf:"app_env"`
	CORSOrigins   string `koanf:"cors_origins"`
	JWTSecret     string `koanf:"jwt_secret"`
	LookupVersion string `koanf:"lookup_version"`

	// Days of push history kept; 0 keeps everything.
	NotificationRetentionDays int `koanf:"notification_retention_days"`

	Database  DatabaseConfig  `koanf:"database"`
	Push      PushConfig      `koanf:"push"`
	Site      SiteConfig      `koanf:"site"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// DatabaseConfig selects the gorm driver. DSN wins over the individual fields.
type DatabaseConfig struct {
	Driver   string `koanf:"driver"` // "postgres" or "sqlite"
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// PushConfig holds the push-notification provider credentials.
type PushConfig struct {
	AppID    string `koanf:"app_id"`
	APIKey   string `koanf:"api_key"`
	Endpoint string `koanf:"endpoint"`
}

type SiteConfig struct {
	Name    string `koanf:"name"`
	BaseURL string `koanf:"base_url"` // e.g. "https://liturgia.example.org"
}

type RateLimitConfig struct {
	Enabled       bool `koanf:"enabled"`
	MaxRequests   int  `koanf:"max_requests"`
	WindowSeconds int  `koanf:"window_seconds"`
	AuthMax       int  `koanf:"auth_max"`
	AuthWindow    int  `koanf:"auth_window_seconds"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:          "3000",
		AppEnv:        "development",
		CORSOrigins:   "http://localhost:3000",
		LookupVersion: "NRSVCE",

		NotificationRetentionDays: 180,
		Database: DatabaseConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "liturgia",
			SSLMode: "disable",
		},
		Push: PushConfig{
			Endpoint: "https://api.onesignal.com/notifications",
		},
		Site: SiteConfig{
			Name:    "Liturgia Diária",
			BaseURL: "http://localhost:3000",
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			MaxRequests:   100,
			WindowSeconds: 900,
			AuthMax:       5,
			AuthWindow:    300,
		},
	}
}

// Load reads .env, then the TOML file named by LITURGIA_CONFIG (default
// config.toml, skipped when missing), then environment variables.
// Later sources win.
func Load() (*Config, error) {
	// .env is optional; system environment variables are used otherwise.
	_ = godotenv.Load()

	cfg := Default()

	path := getEnv("LITURGIA_CONFIG", "config.toml")
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	cfg.Site.BaseURL = strings.TrimSuffix(cfg.Site.BaseURL, "/")

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.LookupVersion = getEnv("LOOKUP_VERSION", cfg.LookupVersion)
	cfg.NotificationRetentionDays = getEnvInt("NOTIFICATION_RETENTION_DAYS", cfg.NotificationRetentionDays)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DATABASE_URL", cfg.Database.DSN)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)

	cfg.Push.AppID = getEnv("PUSH_APP_ID", cfg.Push.AppID)
	cfg.Push.APIKey = getEnv("PUSH_API_KEY", cfg.Push.APIKey)
	cfg.Push.Endpoint = getEnv("PUSH_ENDPOINT", cfg.Push.Endpoint)

	cfg.Site.Name = getEnv("SITE_NAME", cfg.Site.Name)
	cfg.Site.BaseURL = getEnv("SITE_BASE_URL", cfg.Site.BaseURL)

	cfg.RateLimit.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.MaxRequests = getEnvInt("RATE_LIMIT_MAX_REQUESTS", cfg.RateLimit.MaxRequests)
	cfg.RateLimit.WindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimit.WindowSeconds)
	cfg.RateLimit.AuthMax = getEnvInt("AUTH_RATE_LIMIT_MAX", cfg.RateLimit.AuthMax)
	cfg.RateLimit.AuthWindow = getEnvInt("AUTH_RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimit.AuthWindow)
}

// Validate checks settings the server cannot start without. It returns
// warnings for settings that are allowed but suspicious.
func (c *Config) Validate() (warnings []string, err error) {
	if c.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set. Generate one with: openssl rand -base64 64")
	}
	if len(c.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET must be at least 32 characters long")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.IsProduction() {
		if c.CORSOrigins == "" || c.CORSOrigins == "http://localhost:3000" {
			warnings = append(warnings, "CORS_ORIGINS not properly configured for production")
		}
		if c.Push.AppID == "" || c.Push.APIKey == "" {
			warnings = append(warnings, "push notifications are not configured")
		}
	}
	return warnings, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN builds a libpq connection string from the individual fields.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "":
		return def
	case "false", "0", "no":
		return false
	default:
		return true
	}
}
