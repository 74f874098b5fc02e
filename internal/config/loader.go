package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigEnv names the environment variable pointing at the YAML file.
const ConfigEnv = "RESEARCH_HUB_CONFIG"

// Load builds the configuration. Values come from, lowest first: env-default
// tags, the YAML file, the environment, then dbPath when non-empty (the
// --db flag). The file is $RESEARCH_HUB_CONFIG or Dir()/config.yaml; only
// an explicitly named file has to exist.
func Load(dbPath string) (*Config, error) {
	var cfg Config
	if err := read(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func read(cfg *Config) error {
	path, explicit := os.Getenv(ConfigEnv), true
	if path == "" {
		path, explicit = filepath.Join(Dir(), "config.yaml"), false
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return nil
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}
