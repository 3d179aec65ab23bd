// Package config reads the process environment. Every knob the server
// uses — database pool sizes, Redis address, SMTP relay, JWT secret —
// comes through the typed getters here so defaults live in one place.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, val, defaultVal)
		return defaultVal
	}
	return i
}

// GetDurationEnv returns a duration environment variable ("1h", "30m")
// or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, val, defaultVal)
		return defaultVal
	}
	return d
}

// JWTSecret returns the token signing secret, empty when unset. Callers
// fail closed on empty rather than falling back to a literal.
func JWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
