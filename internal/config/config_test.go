package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.HTTP.Addr)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected default driver %q", cfg.Database.Driver)
	}
	if cfg.Lookup.Mode != "fixture" {
		t.Fatalf("unexpected default lookup mode %q", cfg.Lookup.Mode)
	}
	if cfg.Lookup.Delay != 1500*time.Millisecond {
		t.Fatalf("unexpected default lookup delay %v", cfg.Lookup.Delay)
	}
	if cfg.IsProduction() {
		t.Fatalf("default environment must not be production")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CONFERENCIA_LOOKUP_MODE", "database")
	t.Setenv("CONFERENCIA_HTTP_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lookup.Mode != "database" {
		t.Fatalf("expected env override for lookup mode, got %q", cfg.Lookup.Mode)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("expected env override for addr, got %q", cfg.HTTP.Addr)
	}
}
