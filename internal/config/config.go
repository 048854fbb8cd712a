package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config carries all deployment-time settings. Provider and model are
// fixed here rather than accepted per request; changing them is a
// deployment decision.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	LLMProvider     string
	ModelName       string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	RedisURL string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		ModelName:       getEnv("MODEL_NAME", "gpt-5-nano"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
