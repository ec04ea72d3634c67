package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Xdfflow   XdfflowConfig   `yaml:"xdfflow"`
	Converter ConverterConfig `yaml:"converter"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type XdfflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ConverterConfig controls which streams are converted and how the
// recording's clocks are treated during loading.
type ConverterConfig struct {
	// StreamIndices restricts conversion to the given 1-based stream
	// indices. Empty means all continuous streams.
	StreamIndices []int `yaml:"stream_indices"`
	// SyncClocks applies the recording's clock offset corrections to
	// stream timestamps while loading.
	SyncClocks bool `yaml:"sync_clocks"`
	// MarkerType is the stream type treated as a discrete event stream.
	MarkerType string `yaml:"marker_type"`
	// AnchorType is the stream type whose earliest start time anchors
	// event sample indices.
	AnchorType string `yaml:"anchor_type"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Xdfflow: XdfflowConfig{
			Name:    "xdfflow",
			Version: "dev",
		},
		Converter: ConverterConfig{
			SyncClocks: true,
			MarkerType: "Markers",
			AnchorType: "EEG",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	// Read configuration file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override logging settings from environment variables if available
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		config.Logging.Output = strings.TrimSpace(v)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Converter.MarkerType == "" {
		return fmt.Errorf("converter.marker_type must not be empty")
	}
	if cfg.Converter.AnchorType == "" {
		return fmt.Errorf("converter.anchor_type must not be empty")
	}
	for _, idx := range cfg.Converter.StreamIndices {
		if idx < 1 {
			return fmt.Errorf("converter.stream_indices entries are 1-based, got %d", idx)
		}
	}
	if cfg.Logging.MaxAge < 0 {
		return fmt.Errorf("logging.max_age must not be negative")
	}
	return nil
}
