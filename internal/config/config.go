package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Session auth
	SessionJWTSecret string
	SessionTTL       time.Duration
	AuthUsername     string
	AuthPassword     string

	// Completion provider
	OpenAIAPIKey string
	OpenAIModel  string

	// Salesforce CRM
	SFLoginURL     string
	SFClientID     string
	SFClientSecret string
	SFUsername     string
	SFPassword     string
	SFAPIVersion   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		SessionJWTSecret: getEnv("SESSION_JWT_SECRET", ""),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		AuthUsername:     getEnv("AUTH_USERNAME", "arpan"),
		AuthPassword:     getEnv("AUTH_PASSWORD", "arpan"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		SFLoginURL:     getEnv("SF_LOGIN_URL", "https://login.salesforce.com"),
		SFClientID:     getEnv("SF_CLIENT_ID", ""),
		SFClientSecret: getEnv("SF_CLIENT_SECRET", ""),
		SFUsername:     getEnv("SF_USERNAME", ""),
		SFPassword:     getEnv("SF_PASSWORD", ""),
		SFAPIVersion:   getEnv("SF_API_VERSION", "v57.0"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
