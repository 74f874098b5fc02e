package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Validate checks value ranges. Load calls it automatically.
func (c *Config) Validate() error {
	if c.DB.QuotaBytes < 0 {
		return fmt.Errorf("db.quota_bytes must be >= 0 (got %d)", c.DB.QuotaBytes)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %s (got %q)", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %s (got %q)", strings.Join(logFormats, ", "), c.Log.Format)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be > 0 (got %s)", c.AI.Timeout)
	}
	if c.AI.MaxInputChars <= 0 {
		return fmt.Errorf("ai.max_input_chars must be > 0 (got %d)", c.AI.MaxInputChars)
	}
	if c.Doc.MaxPages <= 0 || c.Doc.MaxChars <= 0 {
		return fmt.Errorf("doc limits must be > 0 (got %d pages, %d chars)", c.Doc.MaxPages, c.Doc.MaxChars)
	}
	if c.Auth.Required && strings.TrimSpace(c.Auth.AllowedDomain) == "" {
		return fmt.Errorf("auth.allowed_domain is required when auth.required is set")
	}
	return nil
}
