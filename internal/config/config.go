// Package config loads the calplan process configuration from environment
// variables, with optional .env file support for local development.
//
// Configuration is read once at process start and treated as read-only
// afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultTimezone    = "Asia/Dubai"
	DefaultModel       = "gpt-4-1106-preview"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultListen      = "127.0.0.1:8080"
)

// Config holds all process-level settings.
type Config struct {
	// Timezone is the IANA identifier of the operational timezone all
	// timestamps are normalized to.
	Timezone string

	// OpenAI settings.
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float32
	OpenAIMaxTokens   int

	// CalDAV settings.
	CalDAVURL      string
	CalDAVUsername string
	CalDAVPassword string

	// Listen is the HTTP listen address for the web front end.
	Listen string

	// LogLevel is the minimum slog level (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; a missing .env file is not an
// error.
func Load() (*Config, error) {
	// Ignore the error: .env is a local-development convenience only.
	_ = godotenv.Load()

	cfg := &Config{
		Timezone:       getEnvOrDefault("CALPLAN_TIMEZONE", DefaultTimezone),
		OpenAIAPIKey:   getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", DefaultModel),
		CalDAVURL:      getEnvOrDefault("CALDAV_URL", ""),
		CalDAVUsername: getEnvOrDefault("CALDAV_USERNAME", ""),
		CalDAVPassword: getEnvOrDefault("CALDAV_PASSWORD", ""),
		Listen:         getEnvOrDefault("CALPLAN_LISTEN", DefaultListen),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
	}

	temperature, err := getEnvFloat("OPENAI_TEMPERATURE", DefaultTemperature)
	if err != nil {
		return nil, err
	}
	cfg.OpenAITemperature = temperature

	maxTokens, err := getEnvInt("OPENAI_MAX_TOKENS", DefaultMaxTokens)
	if err != nil {
		return nil, err
	}
	cfg.OpenAIMaxTokens = maxTokens

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if c.CalDAVURL == "" {
		return fmt.Errorf("CALDAV_URL is not set")
	}
	if c.CalDAVUsername == "" {
		return fmt.Errorf("CALDAV_USERNAME is not set")
	}
	if c.CalDAVPassword == "" {
		return fmt.Errorf("CALDAV_PASSWORD is not set")
	}
	return nil
}

// getEnvOrDefault returns the trimmed value of the environment variable, or
// the default when unset or blank.
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float32) (float32, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return float32(v), nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
