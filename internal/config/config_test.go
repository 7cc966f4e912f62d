package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MASCOTCHAT_AI_APIKEY", "test-key")
	t.Setenv("MASCOTCHAT_AUTH_SESSIONSECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("server port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.AI.Model != "gpt-4o" {
		t.Errorf("ai model = %q, want gpt-4o", cfg.AI.Model)
	}
	if cfg.Auth.SessionTTL != 60 {
		t.Errorf("session ttl = %d, want 60", cfg.Auth.SessionTTL)
	}
	if cfg.RateLimit.Requests != 60 || cfg.RateLimit.Window != 60 {
		t.Errorf("rate limit = %d/%ds, want 60/60s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	if cfg.Chat.Retention != 24 || cfg.Chat.ClearOnStart {
		t.Errorf("chat config = %+v", cfg.Chat)
	}
	if cfg.Database.URL != "" || cfg.Redis.Addr != "" {
		t.Error("storage backends should default to in-memory")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MASCOTCHAT_AI_APIKEY", "test-key")
	t.Setenv("MASCOTCHAT_AUTH_SESSIONSECRET", "test-secret")
	t.Setenv("MASCOTCHAT_SERVER_PORT", "8080")
	t.Setenv("MASCOTCHAT_AI_MODEL", "gpt-4o-mini")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("ai model = %q, want gpt-4o-mini", cfg.AI.Model)
	}
	if cfg.AI.APIKey != "test-key" {
		t.Errorf("api key = %q, want test-key", cfg.AI.APIKey)
	}
}

func TestLoadRequiredFields(t *testing.T) {
	t.Setenv("MASCOTCHAT_AI_APIKEY", "")
	t.Setenv("MASCOTCHAT_AUTH_SESSIONSECRET", "")

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "apiKey") {
		t.Errorf("Load() without api key error = %v, want apiKey requirement", err)
	}

	t.Setenv("MASCOTCHAT_AI_APIKEY", "test-key")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "sessionSecret") {
		t.Errorf("Load() without session secret error = %v, want sessionSecret requirement", err)
	}
}

func TestGetAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := c.GetAddr(); got != "127.0.0.1:9000" {
		t.Errorf("GetAddr() = %q", got)
	}
}
