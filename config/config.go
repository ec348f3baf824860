// Package config loads server configuration from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Port the HTTP server listens on.
	Port int

	// DatabasePath is the SQLite database file, ":memory:" for in-memory.
	DatabasePath string

	// DaysBeforeReminder is the grace period between filing an application
	// and the first overdue reminder.
	DaysBeforeReminder int

	// ReminderInterval is how often the scheduler scans for overdue
	// applications.
	ReminderInterval time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; every value has a default.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded, using environment")
	}

	cfg := &Config{
		Port:               getEnvAsInt("PORT", 8080),
		DatabasePath:       getEnv("DATABASE_PATH", "leave.db"),
		DaysBeforeReminder: getEnvAsInt("DAYS_BEFORE_REMINDER", 2),
		ReminderInterval:   getEnvAsDuration("REMINDER_INTERVAL", 1*time.Hour),
	}

	if cfg.DaysBeforeReminder < 0 {
		logrus.Fatalf("DAYS_BEFORE_REMINDER must be >= 0, got %d", cfg.DaysBeforeReminder)
	}

	return cfg
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}
	return defaultVal
}
