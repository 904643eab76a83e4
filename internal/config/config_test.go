package config

import "testing"

func validConfig() *Config {
	return &Config{
		Env:            "production",
		TelegramToken:  "123456:test-token",
		ConfigDir:      "config",
		FilesDir:       "files",
		HTTPTimeoutSec: 30,
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidateMissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.TelegramToken = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing telegram token")
	}
}

func TestValidateEmptyDirs(t *testing.T) {
	cfg := validConfig()
	cfg.ConfigDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty config dir")
	}

	cfg = validConfig()
	cfg.FilesDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty files dir")
	}
}

func TestValidateTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPTimeoutSec = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := validConfig()
	if cfg.IsDevelopment() {
		t.Fatal("production config reported as development")
	}
	cfg.Env = "development"
	if !cfg.IsDevelopment() {
		t.Fatal("development config not reported as development")
	}
}
