package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"tempo/internal/platform/config"
)

func TestDefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DataDir != dir || cfg.Backend != config.BackendFile || cfg.Notify {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath() != filepath.Join(dir, "tempo.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath())
	}
}

func TestConfigFileOverridesBackend(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := []byte("backend: sqlite\nnotify: true\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Backend != config.BackendSQLite || !cfg.Notify {
		t.Fatalf("config file values must win: %+v", cfg)
	}
	if cfg.DataDir != dir {
		t.Fatalf("data dir must default to the resolved dir, got %s", cfg.DataDir)
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: redis\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("unsupported backend must fail")
	}
}
