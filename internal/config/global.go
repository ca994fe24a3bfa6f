package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GlobalConfig holds global settings from ~/.keypair/config.yaml.
type GlobalConfig struct {
	Debug DebugConfig `yaml:"debug"`
}

// DebugConfig controls the debug log files.
type DebugConfig struct {
	// RetentionDays is how long daily debug logs are kept (0 = forever).
	RetentionDays int `yaml:"retention_days"`
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Debug: DebugConfig{
			RetentionDays: 14,
		},
	}
}

// LoadGlobal reads ~/.keypair/config.yaml and applies environment overrides.
// A missing or malformed file yields the defaults.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	if data, err := os.ReadFile(filepath.Join(GlobalConfigDir(), "config.yaml")); err == nil {
		_ = yaml.Unmarshal(data, cfg) // Ignore unmarshal errors, use defaults
	}

	if s := os.Getenv("KEYPAIR_DEBUG_RETENTION_DAYS"); s != "" {
		if days, err := strconv.Atoi(s); err == nil && days >= 0 {
			cfg.Debug.RetentionDays = days
		}
	}

	return cfg, nil
}

// GlobalConfigDir returns the path to ~/.keypair.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".keypair")
	}
	return filepath.Join(homeDir, ".keypair")
}
