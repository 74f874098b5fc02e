// Package config loads research-hub settings from YAML and the environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration.
type Config struct {
	DB   DBConfig   `yaml:"db"`
	Log  LogConfig  `yaml:"log"`
	AI   AIConfig   `yaml:"ai"`
	Doc  DocConfig  `yaml:"doc"`
	Auth AuthConfig `yaml:"auth"`
}

// DBConfig locates the SQLite file holding the storage slots.
type DBConfig struct {
	Path       string `yaml:"path"        env:"RESEARCH_HUB_DB"`
	QuotaBytes int    `yaml:"quota_bytes" env:"RESEARCH_HUB_DB_QUOTA" env-default:"5242880"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"RESEARCH_HUB_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"RESEARCH_HUB_LOG_FORMAT" env-default:"console"`
}

// AIConfig holds the language model settings. The API key itself lives in
// the user settings, not here.
type AIConfig struct {
	Model         string        `yaml:"model"           env:"RESEARCH_HUB_AI_MODEL"          env-default:"gemini-2.5-flash"`
	InsightsModel string        `yaml:"insights_model"  env:"RESEARCH_HUB_AI_INSIGHTS_MODEL" env-default:"gemini-2.5-flash"`
	Timeout       time.Duration `yaml:"timeout"         env:"RESEARCH_HUB_AI_TIMEOUT"        env-default:"60s"`
	MaxInputChars int           `yaml:"max_input_chars" env:"RESEARCH_HUB_AI_MAX_INPUT"      env-default:"6000"`
}

// DocConfig limits how much of an uploaded document is read.
type DocConfig struct {
	MaxPages int `yaml:"max_pages" env:"RESEARCH_HUB_DOC_MAX_PAGES" env-default:"20"`
	MaxChars int `yaml:"max_chars" env:"RESEARCH_HUB_DOC_MAX_CHARS" env-default:"15000"`
}

// AuthConfig gates mutating commands on the user's email domain.
type AuthConfig struct {
	AllowedDomain string `yaml:"allowed_domain" env:"RESEARCH_HUB_ALLOWED_DOMAIN" env-default:"nubank.com.br"`
	UserEmail     string `yaml:"user_email"     env:"RESEARCH_HUB_USER"`
	Required      bool   `yaml:"required"       env:"RESEARCH_HUB_AUTH_REQUIRED"  env-default:"false"`
}

// Dir is the per-user data directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".research-hub")
}

// DBPath returns the configured database path, or the default under Dir.
func (c *Config) DBPath() string {
	if c.DB.Path != "" {
		return c.DB.Path
	}
	return filepath.Join(Dir(), "research-hub.db")
}
