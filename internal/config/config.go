// Package config provides application configuration loading from environment
// variables and .env files. It uses viper for flexible configuration
// management with sensible defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment
// variables or a .env file. Priority: environment variables > .env > defaults.
type Config struct {
	AppEnv                  string // Application environment (dev, staging, prod)
	HTTPAddr                string // HTTP server bind address (e.g., ":8080")
	MetricsAddr             string // Metrics server bind address
	StoreType               string // Rule storage backend (file, memory, postgres)
	RulesPath               string // Path to the processed rules JSON document
	DatabaseDSN             string // PostgreSQL connection string (postgres store)
	WatchRules              bool   // Reload the rules file on change
	AdminAPIKey             string // Bearer key for rule write operations
	RateLimitPerIP          int    // Per-IP request limit per minute on public endpoints
	OpenAIAPIKey            string // OpenAI API key; empty disables narrative generation
	OpenAIModel             string // Completion model for narrative reports
	OpenAIBaseURL           string // Override for the OpenAI API host
	NarrativeTimeoutSeconds int    // Upper bound for one narrative-generation call
}

// Load reads configuration from environment variables and .env file (if
// present). Use Validate to check production-readiness constraints.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	setConfigDefaults(v)

	return &Config{
		AppEnv:                  v.GetString("APP_ENV"),
		HTTPAddr:                v.GetString("APP_HTTP_ADDR"),
		MetricsAddr:             v.GetString("METRICS_ADDR"),
		StoreType:               v.GetString("STORE_TYPE"),
		RulesPath:               v.GetString("RULES_PATH"),
		DatabaseDSN:             v.GetString("DB_DSN"),
		WatchRules:              v.GetBool("WATCH_RULES"),
		AdminAPIKey:             v.GetString("ADMIN_API_KEY"),
		RateLimitPerIP:          v.GetInt("RATE_LIMIT_PER_IP"),
		OpenAIAPIKey:            v.GetString("OPENAI_API_KEY"),
		OpenAIModel:             v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL:           v.GetString("OPENAI_BASE_URL"),
		NarrativeTimeoutSeconds: v.GetInt("NARRATIVE_TIMEOUT_SECONDS"),
	}, nil
}

// setConfigDefaults sets defaults suitable for local development.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_HTTP_ADDR", ":3000")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("STORE_TYPE", "file")
	v.SetDefault("RULES_PATH", "data/processed_rules.json")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("WATCH_RULES", true)
	v.SetDefault("ADMIN_API_KEY", "admin-123") // Change in production!
	v.SetDefault("RATE_LIMIT_PER_IP", 100)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("NARRATIVE_TIMEOUT_SECONDS", 20)
}

// ValidationError represents a configuration validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks that the configuration is internally consistent and, for
// production environments, safe. Call it at startup to fail fast on
// misconfiguration.
func (c *Config) Validate() error {
	switch c.StoreType {
	case "file", "memory", "postgres":
	default:
		return ValidationError{
			Field:   "STORE_TYPE",
			Message: fmt.Sprintf("must be 'file', 'memory' or 'postgres', got '%s'", c.StoreType),
		}
	}

	if c.StoreType == "file" && c.RulesPath == "" {
		return ValidationError{
			Field:   "RULES_PATH",
			Message: "rules path is required when STORE_TYPE=file",
		}
	}

	if c.StoreType == "postgres" && c.DatabaseDSN == "" {
		return ValidationError{
			Field:   "DB_DSN",
			Message: "database DSN is required when STORE_TYPE=postgres",
		}
	}

	if c.HTTPAddr == "" {
		return ValidationError{
			Field:   "APP_HTTP_ADDR",
			Message: "HTTP server address cannot be empty",
		}
	}

	if c.MetricsAddr == "" {
		return ValidationError{
			Field:   "METRICS_ADDR",
			Message: "metrics server address cannot be empty",
		}
	}

	if c.NarrativeTimeoutSeconds <= 0 {
		return ValidationError{
			Field:   "NARRATIVE_TIMEOUT_SECONDS",
			Message: "narrative timeout must be positive",
		}
	}

	if c.AppEnv == "prod" || c.AppEnv == "production" {
		if c.AdminAPIKey == "admin-123" {
			return ValidationError{
				Field:   "ADMIN_API_KEY",
				Message: "default admin API key 'admin-123' is not allowed in production",
			}
		}
	}

	return nil
}
