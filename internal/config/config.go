// Package config reads the optional service credentials from the
// environment. The app works fully offline; missing cloud or AI settings
// disable those features rather than failing startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the application.
type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string
	GeminiAPIKey    string
}

// NewFromEnv creates a new Config object from environment variables.
// Cloud sync requires both ROTATION_SUPABASE_URL and
// ROTATION_SUPABASE_ANON_KEY; setting only one is a misconfiguration.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		SupabaseURL:     os.Getenv("ROTATION_SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("ROTATION_SUPABASE_ANON_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
	}

	if (cfg.SupabaseURL == "") != (cfg.SupabaseAnonKey == "") {
		return nil, fmt.Errorf("ROTATION_SUPABASE_URL and ROTATION_SUPABASE_ANON_KEY must be set together")
	}

	return cfg, nil
}

// RemoteEnabled reports whether cloud accounts and sync are configured.
func (c *Config) RemoteEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

// AIEnabled reports whether recipe import and editing are configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// DefaultDataPath is where the local store lives unless overridden on the
// command line.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rotation.db"
	}
	return filepath.Join(home, ".config", "rotation", "rotation.db")
}
