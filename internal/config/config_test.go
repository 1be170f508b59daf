package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://app.sereno.app,https://staging.sereno.app")
	t.Setenv("ACTIVITY_COOLDOWN", "2s")
	t.Setenv("DECAY_INTERVAL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Port)
	}
	if cfg.AllowedOrigins != "https://app.sereno.app,https://staging.sereno.app" {
		t.Errorf("allowed origins = %q", cfg.AllowedOrigins)
	}
	if cfg.ActivityCooldown != 2*time.Second {
		t.Errorf("cooldown = %v, want 2s", cfg.ActivityCooldown)
	}
	if cfg.DecayInterval != time.Hour {
		t.Errorf("decay interval = %v, want 1h", cfg.DecayInterval)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("ACTIVITY_COOLDOWN", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject an unparsable ACTIVITY_COOLDOWN")
	}
}
