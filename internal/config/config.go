package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	BaseURL     string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	HTTPTimeout int // outbound client timeout in seconds, applied at wiring time
}

// Load builds Config from environment with sensible defaults. BASE_URL is
// the root of the remote user directory every request is proxied to.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		HTTPTimeout: getEnvInt("HTTP_TIMEOUT", 15),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
