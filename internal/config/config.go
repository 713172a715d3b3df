// Package config loads application configuration from a TOML file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains library store settings.
type DatabaseConfig struct {
	// Path to the SQLite database file (":memory:" for ephemeral).
	Path string `toml:"path"`
}

// AudioConfig contains audio engine settings.
type AudioConfig struct {
	// Device is the audio output device index (-1 for default).
	Device int `toml:"device"`

	// SampleRate is the mixing sample rate in Hz.
	SampleRate int `toml:"sample_rate"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// Load reads and parses a TOML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Default returns a Config with defaults loaded from the embedded example config.
func Default() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// WriteExample creates a config file at the specified path using the embedded
// example config. Fails when the file already exists.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
