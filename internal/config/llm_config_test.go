package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLLMConfigDefaults(t *testing.T) {
	t.Setenv("OPEN_AI_API_KEY", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")

	cfg := GetLLMConfig()
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
}

func TestGetLLMConfigFromEnv(t *testing.T) {
	t.Setenv("OPEN_AI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")

	cfg := GetLLMConfig()
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestGetLLMConfigIgnoresBadValues(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "hot")
	t.Setenv("LLM_TIMEOUT_SECONDS", "-1")

	cfg := GetLLMConfig()
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
}
