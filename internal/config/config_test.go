package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty dir so a real ~/.research-hub is never read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"RESEARCH_HUB_CONFIG", "RESEARCH_HUB_DB", "RESEARCH_HUB_LOG_LEVEL", "RESEARCH_HUB_AUTH_REQUIRED"} {
		t.Setenv(key, "") // restores the original value on cleanup
		os.Unsetenv(key)
	}
	return home
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 6000, cfg.AI.MaxInputChars)
	assert.Equal(t, 20, cfg.Doc.MaxPages)
	assert.Equal(t, 15000, cfg.Doc.MaxChars)
	assert.Equal(t, "nubank.com.br", cfg.Auth.AllowedDomain)
	assert.False(t, cfg.Auth.Required)
	assert.Equal(t, filepath.Join(home, ".research-hub", "research-hub.db"), cfg.DBPath())
}

func TestLoad_ValidYAML(t *testing.T) {
	isolate(t)
	t.Setenv("RESEARCH_HUB_CONFIG", writeYAML(t, `
db:
  path: "/tmp/hub.db"
  quota_bytes: 1024
log:
  level: debug
  format: json
ai:
  model: gemini-test
  timeout: 5s
auth:
  required: true
  user_email: yas@nubank.com.br
`))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hub.db", cfg.DBPath())
	assert.Equal(t, 1024, cfg.DB.QuotaBytes)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "gemini-test", cfg.AI.Model)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.True(t, cfg.Auth.Required)
	assert.Equal(t, "yas@nubank.com.br", cfg.Auth.UserEmail)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	isolate(t)
	t.Setenv("RESEARCH_HUB_CONFIG", writeYAML(t, "db:\n  path: /from/yaml.db\n"))
	t.Setenv("RESEARCH_HUB_DB", "/from/env.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath())
}

func TestLoad_FlagOverridesEnvAndYAML(t *testing.T) {
	isolate(t)
	t.Setenv("RESEARCH_HUB_CONFIG", writeYAML(t, "db:\n  path: /from/yaml.db\n"))
	t.Setenv("RESEARCH_HUB_DB", "/from/env.db")

	cfg, err := Load("/from/flag.db")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DBPath())
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	t.Setenv("RESEARCH_HUB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	t.Setenv("RESEARCH_HUB_CONFIG", writeYAML(t, "log: [unclosed"))

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:  LogConfig{Level: "info", Format: "console"},
			AI:   AIConfig{Timeout: time.Second, MaxInputChars: 10},
			Doc:  DocConfig{MaxPages: 1, MaxChars: 1},
			Auth: AuthConfig{AllowedDomain: "example.org"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"negative quota", func(c *Config) { c.DB.QuotaBytes = -1 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"zero timeout", func(c *Config) { c.AI.Timeout = 0 }, true},
		{"zero doc pages", func(c *Config) { c.Doc.MaxPages = 0 }, true},
		{"required without domain", func(c *Config) { c.Auth.Required = true; c.Auth.AllowedDomain = " " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
