package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("expected default driver, got %q", cfg.Database.Driver)
	}
	if cfg.Realtime.Bus != "local" {
		t.Fatalf("expected default bus, got %q", cfg.Realtime.Bus)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contactbook.yaml")
	raw := `
server:
  port: "9090"
database:
  driver: sqlite
  sqlite_path: /tmp/contacts.db
realtime:
  bus: redis
  redis_addr: localhost:6379
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/contacts.db" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Realtime.Bus != "redis" || cfg.Realtime.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected realtime config: %+v", cfg.Realtime)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contactbook.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected env port 7070, got %q", cfg.Server.Port)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contactbook.yaml")
	if err := os.WriteFile(path, []byte("nonsense: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "mongodb"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}

	cfg = Default()
	cfg.Realtime.Bus = "redis"
	cfg.Realtime.RedisAddr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for redis bus without addr")
	}
}
