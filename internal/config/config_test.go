// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies defaults, overrides, and validation errors

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("A365_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.AppID != "004" {
		t.Errorf("Expected default app id 004, got %s", cfg.AppID)
	}
	if cfg.SID != "999" {
		t.Errorf("Expected default sid 999, got %s", cfg.SID)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %s", cfg.Timeout)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Expected default environment dev, got %s", cfg.Environment)
	}
	if cfg.AuthURL == "" || cfg.HXMURL == "" || cfg.MainURL == "" {
		t.Error("Expected default backend URLs to be set")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("A365_DATA_DIR", t.TempDir())
	os.Setenv("A365_HXM_URL", "hxm.example.com")
	os.Setenv("A365_AUTH_URL", "https://iam.example.com/api/auth")
	os.Setenv("A365_SECRET_KEY", "test-secret")
	os.Setenv("A365_TIMEOUT_SECONDS", "5")
	os.Setenv("A365_ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.HXMURL != "https://hxm.example.com" {
		t.Errorf("Expected scheme added to HXM URL, got %s", cfg.HXMURL)
	}
	if cfg.AuthURL != "https://iam.example.com/api/auth" {
		t.Errorf("Expected auth URL unchanged, got %s", cfg.AuthURL)
	}
	if cfg.SecretKey != "test-secret" {
		t.Errorf("Expected secret override, got %s", cfg.SecretKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.Environment != "prod" {
		t.Errorf("Expected prod environment, got %s", cfg.Environment)
	}
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	os.Clearenv()
	os.Setenv("A365_DATA_DIR", t.TempDir())
	os.Setenv("A365_ENV", "production")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid environment, got nil")
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a365.example.com", "https://a365.example.com"},
		{"http://a365.example.com", "http://a365.example.com"},
		{"https://a365.example.com", "https://a365.example.com"},
	}

	for _, tt := range tests {
		if got := ensureScheme(tt.input); got != tt.expected {
			t.Errorf("ensureScheme(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
