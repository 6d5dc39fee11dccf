package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	DataDir string `yaml:"data_dir"`
	Backend string `yaml:"backend"`
	Notify  bool   `yaml:"notify"`
}

// New resolves the effective configuration: defaults, overlaid with
// config.yaml from the data dir if present, overlaid with an explicit
// data-dir override from the caller.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".tempo")
	}
	cfg := Config{
		DataDir: dataDir,
		Backend: BackendFile,
	}
	payload, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	switch cfg.Backend {
	case "", BackendFile:
		cfg.Backend = BackendFile
	case BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
	return cfg, nil
}

// DBPath is the sqlite database location inside the data dir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "tempo.db")
}
