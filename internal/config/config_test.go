package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("client:\n  owner_id: \"42\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Client.OwnerID != "42" {
		t.Errorf("OwnerID = %q", cfg.Client.OwnerID)
	}
	if cfg.Client.Prefix != "!" {
		t.Errorf("Prefix = %q", cfg.Client.Prefix)
	}
	if cfg.CommandsDir != "./commands" {
		t.Errorf("CommandsDir = %q", cfg.CommandsDir)
	}
	if cfg.Database.Path != "./audit.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Defaults.Timeout != 30*time.Second || cfg.Defaults.MaxOutput != 2000 {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if level, _ := cfg.Log.SlogLevel(); level != slog.LevelInfo {
		t.Errorf("log level = %v", level)
	}
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("TEST_OWNER", "77")

	cfg, err := Parse([]byte("client:\n  owner_id: ${TEST_OWNER}\n  types: [misc, ' fun ']\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Client.OwnerID != "77" {
		t.Errorf("OwnerID = %q, want 77", cfg.Client.OwnerID)
	}
	if strings.Join(cfg.Client.Types, ",") != "MISC,FUN" {
		t.Errorf("Types = %v", cfg.Client.Types)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PAKO_OWNER_ID", "99")
	t.Setenv("PAKO_TIMEOUT", "5s")
	t.Setenv("PAKO_TYPES", "MISC,MUSIC")
	t.Setenv("PAKO_LOG_LEVEL", "debug")

	cfg, err := Parse([]byte("client:\n  owner_id: \"42\"\ndefaults:\n  timeout: 1m\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Client.OwnerID != "99" {
		t.Errorf("OwnerID = %q, want 99", cfg.Client.OwnerID)
	}
	if cfg.Defaults.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Defaults.Timeout)
	}
	if strings.Join(cfg.Client.Types, ",") != "MISC,MUSIC" {
		t.Errorf("Types = %v", cfg.Client.Types)
	}
	if level, _ := cfg.Log.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("log level = %v", level)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "client: [", "parse config"},
		{"negative timeout", "defaults:\n  timeout: -1s\n", "defaults.timeout"},
		{"negative output", "defaults:\n  max_output: -5\n", "defaults.max_output"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"empty type", "client:\n  types: ['']\n", "client.types[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("client:\n  owner_id: ${DOTENV_OWNER}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DOTENV_OWNER=555\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DOTENV_OWNER") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.OwnerID != "555" {
		t.Errorf("OwnerID = %q, want 555", cfg.Client.OwnerID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() error = nil")
	}
}

func TestExpandPath(t *testing.T) {
	cfg := &Config{}
	if got := cfg.ExpandPath("/etc/pako/config.yaml", "commands"); got != "/etc/pako/commands" {
		t.Errorf("ExpandPath(relative) = %q", got)
	}
	if got := cfg.ExpandPath("/etc/pako/config.yaml", "/var/db"); got != "/var/db" {
		t.Errorf("ExpandPath(absolute) = %q", got)
	}
	if got := cfg.ExpandPath("/etc/pako/config.yaml", ""); got != "" {
		t.Errorf("ExpandPath(empty) = %q", got)
	}
}
