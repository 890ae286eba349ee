package config

import (
	"errors"
	"testing"
)

func validConfig() *Config {
	return &Config{
		AppEnv:                  "dev",
		HTTPAddr:                ":3000",
		MetricsAddr:             ":9090",
		StoreType:               "file",
		RulesPath:               "data/processed_rules.json",
		AdminAPIKey:             "admin-123",
		RateLimitPerIP:          100,
		NarrativeTimeoutSeconds: 20,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.StoreType != "file" {
		t.Errorf("StoreType = %q", cfg.StoreType)
	}
	if cfg.RulesPath != "data/processed_rules.json" {
		t.Errorf("RulesPath = %q", cfg.RulesPath)
	}
	if !cfg.WatchRules {
		t.Error("WatchRules = false, want true by default")
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.NarrativeTimeoutSeconds != 20 {
		t.Errorf("NarrativeTimeoutSeconds = %d", cfg.NarrativeTimeoutSeconds)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_HTTP_ADDR", ":8088")
	t.Setenv("STORE_TYPE", "memory")
	t.Setenv("RATE_LIMIT_PER_IP", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":8088" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.StoreType != "memory" {
		t.Errorf("StoreType = %q", cfg.StoreType)
	}
	if cfg.RateLimitPerIP != 5 {
		t.Errorf("RateLimitPerIP = %d", cfg.RateLimitPerIP)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"memory store needs no rules path", func(c *Config) {
			c.StoreType = "memory"
			c.RulesPath = ""
		}, ""},
		{"unknown store type", func(c *Config) { c.StoreType = "redis" }, "STORE_TYPE"},
		{"file store without path", func(c *Config) { c.RulesPath = "" }, "RULES_PATH"},
		{"postgres without dsn", func(c *Config) { c.StoreType = "postgres" }, "DB_DSN"},
		{"empty http addr", func(c *Config) { c.HTTPAddr = "" }, "APP_HTTP_ADDR"},
		{"empty metrics addr", func(c *Config) { c.MetricsAddr = "" }, "METRICS_ADDR"},
		{"zero narrative timeout", func(c *Config) { c.NarrativeTimeoutSeconds = 0 }, "NARRATIVE_TIMEOUT_SECONDS"},
		{"default admin key in prod", func(c *Config) { c.AppEnv = "prod" }, "ADMIN_API_KEY"},
		{"custom admin key in prod", func(c *Config) {
			c.AppEnv = "prod"
			c.AdminAPIKey = "s3cret"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
