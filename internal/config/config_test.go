package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadRequiresTokenSecret(t *testing.T) {
	t.Setenv("USERTOKEN_HASH_HMAC", "")

	if _, err := Load(); !errors.Is(err, ErrMissingTokenSecret) {
		t.Fatalf("expected ErrMissingTokenSecret, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("USERTOKEN_HASH_HMAC", "secret")
	t.Setenv("PORT", "")
	t.Setenv("AWS_ENV", "")
	t.Setenv("LINK_DOMAIN", "")
	t.Setenv("AUTHREQ_TTL", "")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Links.Subdomain() != "app" {
		t.Fatalf("expected production subdomain, got %s", cfg.Links.Subdomain())
	}
	if cfg.Links.Domain != "rosa.bot" {
		t.Fatalf("unexpected domain: %s", cfg.Links.Domain)
	}
	if cfg.Links.TTL != 15*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.Links.TTL)
	}
	if cfg.Storage.DatabasePath != "rosa.db" {
		t.Fatalf("unexpected database path: %s", cfg.Storage.DatabasePath)
	}
}

func TestLoadDevelopmentEnvironment(t *testing.T) {
	t.Setenv("USERTOKEN_HASH_HMAC", "secret")
	t.Setenv("AWS_ENV", "dev")
	t.Setenv("AUTHREQ_TTL", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Links.Subdomain() != "app-dev" {
		t.Fatalf("expected app-dev, got %s", cfg.Links.Subdomain())
	}
	if cfg.Links.Origin() != "https://app-dev.rosa.bot" {
		t.Fatalf("unexpected origin: %s", cfg.Links.Origin())
	}
	if cfg.Links.TTL != 2*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.Links.TTL)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("USERTOKEN_HASH_HMAC", "secret")
	t.Setenv("PORT", "80 80")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestAIConfigEnabledRequiresFlag(t *testing.T) {
	cfg := AIConfig{APIKey: "k", Model: "m"}
	if cfg.Enabled() {
		t.Fatal("expected disabled without APP_MATCH_LLM_ENABLED")
	}
	cfg.MatchLLMEnabled = true
	if !cfg.Enabled() {
		t.Fatal("expected enabled with key, model and flag")
	}
}
