package config

import (
	"testing"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.Base != "http://localhost:8000" {
		t.Errorf("API.Base = %q, want default", cfg.API.Base)
	}
	if cfg.API.Prefix != "/api" {
		t.Errorf("API.Prefix = %q, want /api", cfg.API.Prefix)
	}
	if cfg.State.Backend != StateBackendFile {
		t.Errorf("State.Backend = %q, want file", cfg.State.Backend)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Auth.Google.Enabled() {
		t.Error("Google provider should be unconfigured by default")
	}
}

func TestAppConfig_FromEnv(t *testing.T) {
	t.Setenv("SUPRSS_API_BASE", "https://suprss.example.com/")
	t.Setenv("SUPRSS_API_PREFIX", "v2/api")
	t.Setenv("SUPRSS_STATE_BACKEND", "redis")
	t.Setenv("SUPRSS_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("SUPRSS_OAUTH_GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/auth")
	t.Setenv("SUPRSS_OAUTH_GOOGLE_CLIENT_ID", "client-1")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.Base != "https://suprss.example.com" {
		t.Errorf("API.Base = %q, want trailing slash trimmed", cfg.API.Base)
	}
	if cfg.API.Prefix != "/v2/api" {
		t.Errorf("API.Prefix = %q, want leading slash added", cfg.API.Prefix)
	}
	if cfg.State.Backend != StateBackendRedis {
		t.Errorf("State.Backend = %q, want redis", cfg.State.Backend)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if !cfg.Auth.Google.Enabled() {
		t.Error("Google provider should be enabled")
	}
	if cfg.Auth.GitHub.Enabled() {
		t.Error("GitHub provider should stay unconfigured")
	}
}

func TestStateBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    StateBackend
		expectError bool
	}{
		{input: "file", expected: StateBackendFile},
		{input: "REDIS", expected: StateBackendRedis},
		{input: "postgres", expectError: true},
	}

	for _, tt := range tests {
		var b StateBackend
		err := b.UnmarshalText([]byte(tt.input))
		if tt.expectError {
			if err == nil {
				t.Errorf("UnmarshalText(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("UnmarshalText(%q): %v", tt.input, err)
			continue
		}
		if b != tt.expected {
			t.Errorf("UnmarshalText(%q) = %q, want %q", tt.input, b, tt.expected)
		}
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}
}
