package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names recognised by NODE_ENV
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds the runtime configuration shared by the API server and the web shell.
// Values come from the process environment, optionally seeded from a .env file.
type Config struct {
	// Port is the API listen port (PORT)
	Port string

	// CorsOrigin is the single origin allowed to call the API with credentials (CORS_ORIGIN)
	CorsOrigin string

	// Environment is the raw deployment mode (NODE_ENV), empty when unset
	// Only an explicit "development" enables request logging; "production" hides internal error detail
	Environment string

	// DatabasePath is the SQLite file used for boot history (DATABASE_PATH)
	DatabasePath string

	// BootHistoryRetention is how long boot records are kept (BOOT_HISTORY_RETENTION)
	BootHistoryRetention time.Duration

	// WebPort is the web shell listen port (WEB_PORT)
	WebPort string

	// APIURL is the API base URL handed to the web shell's query client (API_URL)
	APIURL string

	// LogLevel is the zap level name (LOG_LEVEL)
	LogLevel string
}

// Load reads .env (if present) into the process environment and builds a Config from it
func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("DATABASE_PATH", "./data/lightpath.db")
	v.SetDefault("BOOT_HISTORY_RETENTION", "720h")
	v.SetDefault("WEB_PORT", "5173")
	v.SetDefault("API_URL", "http://localhost:3000")
}

// FromViper maps viper keys onto a Config without validating it
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:                 strings.TrimSpace(v.GetString("PORT")),
		CorsOrigin:           strings.TrimSpace(v.GetString("CORS_ORIGIN")),
		Environment:          strings.TrimSpace(v.GetString("NODE_ENV")),
		DatabasePath:         v.GetString("DATABASE_PATH"),
		BootHistoryRetention: v.GetDuration("BOOT_HISTORY_RETENTION"),
		WebPort:              strings.TrimSpace(v.GetString("WEB_PORT")),
		APIURL:               strings.TrimSpace(v.GetString("API_URL")),
		LogLevel:             strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		if cfg.IsDevelopment() {
			cfg.LogLevel = "debug"
		}
	}

	return cfg
}

// Validate checks the values that would otherwise fail late, at listen or middleware setup time
func (c *Config) Validate() error {
	if err := validatePort("PORT", c.Port); err != nil {
		return err
	}
	if err := validatePort("WEB_PORT", c.WebPort); err != nil {
		return err
	}

	if c.CorsOrigin == "" {
		return fmt.Errorf("CORS_ORIGIN is required")
	}
	if !strings.HasPrefix(c.CorsOrigin, "http://") && !strings.HasPrefix(c.CorsOrigin, "https://") {
		return fmt.Errorf("CORS_ORIGIN must start with http:// or https:// (got: %s)", c.CorsOrigin)
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.BootHistoryRetention <= 0 {
		return fmt.Errorf("BOOT_HISTORY_RETENTION must be positive (got: %s)", c.BootHistoryRetention)
	}

	return nil
}

func validatePort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be a number (got: %q)", name, value)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535 (got: %d)", name, port)
	}
	return nil
}

// IsDevelopment reports whether NODE_ENV is "development"
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction reports whether NODE_ENV is "production"
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Mode is the environment name used in log output, "development" when NODE_ENV is unset
func (c *Config) Mode() string {
	if c.Environment == "" {
		return EnvDevelopment
	}
	return c.Environment
}

// ListenAddr returns the API listen address
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// WebListenAddr returns the web shell listen address
func (c *Config) WebListenAddr() string {
	return ":" + c.WebPort
}
