package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, loaded from the environment.
type Config struct {
	AppPort       string
	MatchesFile   string
	DatabaseURL   string
	RedisAddr     string
	RedisKey      string
	AllowedOrigin string
}

// Load reads the configuration from the environment (.env is optional).
func Load() *Config {
	// ignore error: .env is only a convenience for local runs
	_ = godotenv.Load()

	return &Config{
		AppPort:       getEnv("PORT", "5000"),
		MatchesFile:   getEnv("MATCHES_FILE", "matches.json"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisKey:      getEnv("REDIS_MATCHES_KEY", "broker:matches"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
