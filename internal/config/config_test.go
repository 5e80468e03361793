package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s3cret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Fatalf("Expected default port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Fatalf("Expected default redis address, got %s", cfg.Redis.Address)
	}
	if cfg.Redis.KeyPrefix != "idlecore:" {
		t.Fatalf("Expected default key prefix, got %s", cfg.Redis.KeyPrefix)
	}
	if cfg.Games.Dir != "./configs/games" {
		t.Fatalf("Expected default games dir, got %s", cfg.Games.Dir)
	}
	if cfg.Sweep.IntervalSeconds != 0 {
		t.Fatalf("Sweep must default to disabled, got %d", cfg.Sweep.IntervalSeconds)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("Expected error for missing jwt secret")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9001
jwt:
  secret: "s3cret"
  issuer: "custom-login"
sweep:
  interval_seconds: 300
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9001 {
		t.Fatalf("Unexpected server config: %+v", cfg.Server)
	}
	if cfg.JWT.Issuer != "custom-login" {
		t.Fatalf("Expected custom issuer, got %s", cfg.JWT.Issuer)
	}
	if cfg.Sweep.IntervalSeconds != 300 {
		t.Fatalf("Expected sweep interval 300, got %d", cfg.Sweep.IntervalSeconds)
	}
}
