package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("expected postgres driver by default, got %q", cfg.StoreDriver)
	}
	if cfg.MaxBodyBytes != 1048576 {
		t.Fatalf("expected fallback body limit, got %d", cfg.MaxBodyBytes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "memory driver needs no database",
			cfg:  Config{StoreDriver: StoreDriverMemory, MaxBodyBytes: 4096},
		},
		{
			name:    "postgres driver requires database url",
			cfg:     Config{StoreDriver: StoreDriverPostgres, MaxBodyBytes: 4096},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{StoreDriver: "sqlite", MaxBodyBytes: 4096},
			wantErr: true,
		},
		{
			name:    "production requires secret",
			cfg:     Config{StoreDriver: StoreDriverPostgres, DatabaseURL: "postgres://x", Environment: "production", MaxBodyBytes: 4096},
			wantErr: true,
		},
		{
			name:    "body limit too small",
			cfg:     Config{StoreDriver: StoreDriverMemory, MaxBodyBytes: 10},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestPortalValidate(t *testing.T) {
	cfg := PortalConfig{BaseURL: "http://localhost:8080", SessionSecret: "s", Timeout: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.SessionSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing secret error")
	}
}
