package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the static configuration surface of the game. Everything is
// read from the environment once at startup and never renegotiated.
type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string

	// Narration provider
	OllamaHost       string
	ModelName        string
	NarrationTimeout time.Duration
	MaxTokens        int
	Temperature      float64

	// API server
	Port     string
	RedisURL string

	// Optional world file; empty means the built-in world.
	WorldFile string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("GAME_LOG_FILE", "game.log"),

		OllamaHost:       getEnv("OLLAMA_HOST", "localhost:11434"),
		ModelName:        getEnv("OLLAMA_MODEL", "gemma2"),
		NarrationTimeout: parseDuration(getEnv("NARRATION_TIMEOUT", "30s"), 30*time.Second),
		MaxTokens:        parseInt(getEnv("NARRATION_MAX_TOKENS", "150"), 150),
		Temperature:      parseFloat(getEnv("NARRATION_TEMPERATURE", "0.7"), 0.7),

		Port:     getEnv("PORT", "8080"),
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		WorldFile: getEnv("WORLD_FILE", ""),
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

func parseDuration(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	return fallback
}

func parseInt(value string, fallback int) int {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return fallback
}

func parseFloat(value string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
