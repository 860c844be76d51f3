package config

import (
	"errors"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "matchmaker")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Session.TTL != 168*time.Hour {
		t.Fatalf("expected default session TTL, got %v", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "session" {
		t.Fatalf("expected default cookie name, got %q", cfg.Session.CookieName)
	}
	if cfg.Auth.MinPasswordLen != 3 {
		t.Fatalf("expected default min password length 3, got %d", cfg.Auth.MinPasswordLen)
	}
	if cfg.App.IsProduction() {
		t.Fatalf("development must not report production")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing env error, got %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	a := AppConfig{Environment: "Production"}
	if !a.IsProduction() {
		t.Fatalf("expected case-insensitive match")
	}
}
