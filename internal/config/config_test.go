package config

import (
	"testing"
	"time"
)

// clearEnv resets every key Load reads so host settings don't leak into tests
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ORIGIN", "NODE_ENV", "DATABASE_PATH",
		"BOOT_HISTORY_RETENTION", "WEB_PORT", "API_URL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults tests the values used when nothing is configured
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.CorsOrigin != "http://localhost:5173" {
		t.Errorf("CorsOrigin = %q, want %q", cfg.CorsOrigin, "http://localhost:5173")
	}
	if cfg.Environment != "" {
		t.Errorf("Environment = %q, want empty", cfg.Environment)
	}
	if cfg.Mode() != EnvDevelopment {
		t.Errorf("Mode() = %q, want %q", cfg.Mode(), EnvDevelopment)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for unset NODE_ENV, want false")
	}
	if cfg.BootHistoryRetention != 720*time.Hour {
		t.Errorf("BootHistoryRetention = %v, want %v", cfg.BootHistoryRetention, 720*time.Hour)
	}
	if cfg.WebPort != "5173" {
		t.Errorf("WebPort = %q, want %q", cfg.WebPort, "5173")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.ListenAddr() != ":3000" {
		t.Errorf("ListenAddr() = %q, want %q", cfg.ListenAddr(), ":3000")
	}
}

// TestLoad_FromEnvironment tests that environment variables override defaults
func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGIN", "https://app.lightpath.example")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("BOOT_HISTORY_RETENTION", "48h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8081")
	}
	if cfg.CorsOrigin != "https://app.lightpath.example" {
		t.Errorf("CorsOrigin = %q, want %q", cfg.CorsOrigin, "https://app.lightpath.example")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q in development", cfg.LogLevel, "debug")
	}
	if cfg.BootHistoryRetention != 48*time.Hour {
		t.Errorf("BootHistoryRetention = %v, want %v", cfg.BootHistoryRetention, 48*time.Hour)
	}
}

// TestValidate tests configuration validation rules
func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:                 "3000",
			CorsOrigin:           "http://localhost:5173",
			DatabasePath:         ":memory:",
			BootHistoryRetention: time.Hour,
			WebPort:              "5173",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, true},
		{"port zero", func(c *Config) { c.Port = "0" }, true},
		{"port too large", func(c *Config) { c.Port = "70000" }, true},
		{"bad web port", func(c *Config) { c.WebPort = "" }, true},
		{"empty CORS origin", func(c *Config) { c.CorsOrigin = "" }, true},
		{"CORS origin without scheme", func(c *Config) { c.CorsOrigin = "localhost:5173" }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"zero retention", func(c *Config) { c.BootHistoryRetention = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
