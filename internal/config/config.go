package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort    string
	AppEnv     string
	AppVersion string

	// DataDir holds the schedule file and the intake database.
	DataDir string

	AuthEnabled bool

	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPSkipVerify bool

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "5000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		DataDir: getEnv("DATA_DIR", "./data"),

		AuthEnabled: getEnvBool("AUTH_ENABLED", true),

		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPSkipVerify: getEnvBool("SMTP_SKIP_TLS_VERIFY", false),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// SchedulePath is the location of the YAML schedule file.
func (c *Config) SchedulePath() string {
	return filepath.Join(c.DataDir, "reminder.yaml")
}

// DBPath is the location of the intake-log SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "intake_log.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
