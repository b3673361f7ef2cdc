// Package config centralises configuration parsing for the footprint service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values.
type Config struct {
	HTTPAddress          string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	ShutdownTimeout      time.Duration
	CORSOrigin           string
	JWTSecret            string
	JWTIssuer            string
	SessionTTL           time.Duration // Lifetime of a view session and its token, counted from login.
	SessionSweepInterval time.Duration
	PasswordHashCost     int
	LogLevel             string
	LogEncoding          string
}

// Load reads environment variables (optionally from .env) into Config, applying defaults for local dev.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		HTTPAddress:          getEnv("HTTP_ADDRESS", ":8080"),
		ReadTimeout:          getDurationEnv("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:         getDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:          getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:      getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		CORSOrigin:           getEnv("CORS_ORIGIN", "http://localhost:5173"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:            getEnv("JWT_ISSUER", "footprint"),
		SessionTTL:           getDurationEnv("SESSION_TTL", 12*time.Hour),
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL", time.Minute),
		PasswordHashCost:     getIntEnv("PASSWORD_HASH_COST", 10),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogEncoding:          getEnv("LOG_ENCODING", "json"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
