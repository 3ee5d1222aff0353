package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Dir != "./content" {
		t.Errorf("expected default catalog dir, got %q", cfg.Catalog.Dir)
	}
	if cfg.Database.Enabled || cfg.Redis.Enabled {
		t.Error("database and redis must be disabled by default")
	}
	if cfg.Server.TrustProxy {
		t.Error("forwarded headers must not be trusted by default")
	}
	if cfg.RateLimit.Requests != 30 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_TRUST_PROXY", "true")
	t.Setenv("CATALOG_DIR", "/srv/content")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Server.TrustProxy {
		t.Error("expected proxy headers to be trusted")
	}
	if cfg.Catalog.Dir != "/srv/content" {
		t.Errorf("unexpected catalog dir %q", cfg.Catalog.Dir)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled")
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("expected 30s window, got %v", cfg.RateLimit.Window)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("expected origins %v, got %v", want, cfg.CORS.AllowedOrigins)
	}
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("CLEANUP_INTERVAL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Cleanup.Interval != time.Minute {
		t.Errorf("expected defaults, got port %d interval %v", cfg.Server.Port, cfg.Cleanup.Interval)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Catalog:   CatalogConfig{Dir: "content"},
			Database:  DatabaseConfig{DSN: "postgres://x", MaxOpenConns: 5, MaxIdleConns: 1},
			RateLimit: RateLimitConfig{Requests: 10, Window: time.Minute},
			Cleanup:   CleanupConfig{Interval: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"no catalog dir", func(c *Config) { c.Catalog.Dir = "" }, true},
		{"database without dsn", func(c *Config) { c.Database.Enabled = true; c.Database.DSN = "" }, true},
		{"disabled database ignores dsn", func(c *Config) { c.Database.DSN = "" }, false},
		{"idle above open", func(c *Config) { c.Database.Enabled = true; c.Database.MaxIdleConns = 9 }, true},
		{"redis without address", func(c *Config) { c.Redis.Enabled = true }, true},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, false},
		{"rate limit without window", func(c *Config) { c.RateLimit.Window = 0 }, true},
		{"zero cleanup interval", func(c *Config) { c.Cleanup.Interval = 0 }, true},
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
