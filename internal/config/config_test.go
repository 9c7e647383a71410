package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CALDAV_URL", "https://dav.example.com")
	t.Setenv("CALDAV_USERNAME", "alice")
	t.Setenv("CALDAV_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultModel, cfg.OpenAIModel)
	assert.InDelta(t, DefaultTemperature, cfg.OpenAITemperature, 1e-6)
	assert.Equal(t, DefaultMaxTokens, cfg.OpenAIMaxTokens)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CALPLAN_TIMEZONE", "Europe/Berlin")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("OPENAI_MAX_TOKENS", "512")
	t.Setenv("CALPLAN_LISTEN", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.InDelta(t, 0.2, cfg.OpenAITemperature, 1e-6)
	assert.Equal(t, 512, cfg.OpenAIMaxTokens)
	assert.Equal(t, ":9999", cfg.Listen)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing api key", "OPENAI_API_KEY"},
		{"missing caldav url", "CALDAV_URL"},
		{"missing caldav username", "CALDAV_USERNAME"},
		{"missing caldav password", "CALDAV_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}

func TestLoadInvalidNumbers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_TEMPERATURE", "hot")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_TEMPERATURE")

	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("OPENAI_MAX_TOKENS", "many")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_MAX_TOKENS")
}
