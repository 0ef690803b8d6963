package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Range.Target != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[range]
target = "field"
rings = 6
size = 320.5
shooter = "lane-3"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Range.Target == nil || *cfg.Range.Target != "field" {
		t.Fatalf("unexpected target: %v", cfg.Range.Target)
	}
	if cfg.Range.Rings == nil || *cfg.Range.Rings != 6 {
		t.Fatalf("unexpected rings: %v", cfg.Range.Rings)
	}
	if cfg.Range.Size == nil || *cfg.Range.Size != 320.5 {
		t.Fatalf("unexpected size: %v", cfg.Range.Size)
	}
	if cfg.Range.Shooter == nil || *cfg.Range.Shooter != "lane-3" {
		t.Fatalf("unexpected shooter: %v", cfg.Range.Shooter)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
	if cfg.Log.File != nil {
		t.Fatalf("expected unset log file")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[range]\nringz = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "ringz") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "bullseye", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/state", "bullseye", "bullseye.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
