package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Portfolio.BaseURL != "https://someshbagadiya.dev" {
		t.Errorf("base URL = %q, want default", cfg.Portfolio.BaseURL)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_BASE_URL", "http://localhost:3000")
	t.Setenv("OMNICORE_PORT", "8080")
	t.Setenv("OMNICORE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Portfolio.BaseURL != "http://localhost:3000" {
		t.Errorf("base URL = %q, want override", cfg.Portfolio.BaseURL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("OMNICORE_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
