package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("expected default model gpt-3.5-turbo, got %s", cfg.OpenAIModel)
	}
	if cfg.SFLoginURL != "https://login.salesforce.com" {
		t.Errorf("expected default Salesforce login URL, got %s", cfg.SFLoginURL)
	}
	if cfg.SFAPIVersion != "v57.0" {
		t.Errorf("expected default API version v57.0, got %s", cfg.SFAPIVersion)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("expected default session TTL of 12h, got %s", cfg.SessionTTL)
	}
	if cfg.AuthUsername != "arpan" || cfg.AuthPassword != "arpan" {
		t.Errorf("expected hard-coded default credentials, got %s/%s", cfg.AuthUsername, cfg.AuthPassword)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port override, got %s", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("expected model override, got %s", cfg.OpenAIModel)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected TTL override, got %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("expected trimmed CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("expected fallback TTL, got %s", cfg.SessionTTL)
	}
}
