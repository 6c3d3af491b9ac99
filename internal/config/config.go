package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	StoragePath    string
	UploadMaxBytes int64

	GeminiAPIKey string
	GeminiModel  string

	SerperAPIKey     string
	SerperURL        string
	SearchEnabled    bool
	SearchMaxResults int

	AgentConfigPath string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8010"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		StoragePath:    mustEnv("STORAGE_PATH", "./data"),
		UploadMaxBytes: mustEnvInt64("UPLOAD_MAX_BYTES", 25<<20),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:  mustEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		SerperAPIKey:     mustEnv("SERPER_API_KEY", ""),
		SerperURL:        mustEnv("SERPER_URL", ""),
		SearchEnabled:    mustEnvBool("SEARCH_ENABLED", true),
		SearchMaxResults: mustEnvInt("SEARCH_MAX_RESULTS", 3),

		AgentConfigPath: mustEnv("AGENT_CONFIG_PATH", ""),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
