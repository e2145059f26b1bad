package util

import (
	"os"
	"strconv"

	"github.com/grapevine-ai/grapevine/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when one is present. A missing file is not an
// error; the process environment is used as-is, and variables already set
// in the environment always win over the file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}
}

// GetEnv returns the variable's value, empty when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvString returns the variable's value, or fallback when unset. An
// explicitly empty value is returned as-is.
func GetEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses the variable as an integer. Unset or unparseable values
// fall back; a bad value is logged rather than silently swallowed.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Ignoring non-integer environment value", "key", key, "value", value)
		return fallback
	}
	return parsed
}

// GetEnvBool parses the variable with strconv.ParseBool, so "1", "t",
// "TRUE" and friends all work. Unset or unparseable values fall back.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logger.Warn("Ignoring non-boolean environment value", "key", key, "value", value)
		return fallback
	}
	return parsed
}
