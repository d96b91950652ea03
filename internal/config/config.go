package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default file locations relative to the working directory.
const (
	DefaultDatabasePath = ".obras/obras.db"
	DefaultSourceCSV    = "observatorio-de-obras-urbanas.csv"
	DefaultCleanCSV     = ".obras/observatorio-de-obras-urbanas-clean.csv"
)

// Config represents the flat obras configuration.
type Config struct {
	Version      string `json:"version"`
	DatabasePath string `json:"database_path"`
	SourceCSV    string `json:"source_csv,omitempty"`
	CleanCSV     string `json:"clean_csv,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists yet.
func DefaultConfig() *Config {
	return &Config{
		Version:      "1",
		DatabasePath: DefaultDatabasePath,
		SourceCSV:    DefaultSourceCSV,
		CleanCSV:     DefaultCleanCSV,
		LogLevel:     "info",
	}
}

// LoadConfig reads .obras/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".obras", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// LoadOrDefault reads the config, falling back to defaults when the file
// does not exist.
func LoadOrDefault(dir string) *Config {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	obrasDir := filepath.Join(dir, ".obras")
	if err := os.MkdirAll(obrasDir, 0755); err != nil {
		return fmt.Errorf("failed to create .obras dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(obrasDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
