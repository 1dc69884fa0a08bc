package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	Mail           MailConfig
}

// MailConfig is read once at startup; the notifier derives its activation
// state from it and never re-reads the environment.
type MailConfig struct {
	Enabled   bool
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	Recipient string
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "3001"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		Mail: MailConfig{
			Enabled:   os.Getenv("EMAIL_ENABLED") == "true",
			Host:      os.Getenv("EMAIL_HOST"),
			Port:      getEnvInt("EMAIL_PORT", 587),
			User:      os.Getenv("EMAIL_USER"),
			Password:  os.Getenv("EMAIL_PASSWORD"),
			From:      os.Getenv("EMAIL_FROM"),
			Recipient: os.Getenv("NOTIFICATION_EMAIL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

func splitOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
