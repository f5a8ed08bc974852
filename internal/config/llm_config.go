package config

import (
	"os"
	"strconv"
	"time"
)

// LLMConfig holds generative-text API configuration
type LLMConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// GetLLMConfig returns LLM configuration from environment variables
func GetLLMConfig() *LLMConfig {
	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 64)
	if err != nil {
		temperature = 0.7
	}

	timeoutSec, err := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "120"))
	if err != nil || timeoutSec <= 0 {
		timeoutSec = 120
	}

	return &LLMConfig{
		APIKey:      getEnv("OPEN_AI_API_KEY", ""),
		Model:       getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		BaseURL:     getEnv("LLM_BASE_URL", ""),
		Temperature: temperature,
		Timeout:     time.Duration(timeoutSec) * time.Second,
	}
}

// getEnv gets environment variable with fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
