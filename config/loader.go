package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order when no config file is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Port: 16181},
		Source: SourceConfig{
			TimeoutMS: 10000,
			UserAgent: "mvt-to-geojson",
			MaxBytes:  32 << 20,
		},
		Decoder: DecoderConfig{DefaultExtent: 4096, DefaultVersion: 1},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadAppConfig loads, overrides and validates the application configuration.
// With an empty path the DefaultPaths are tried and a missing file yields the
// defaults; an explicit path must exist.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := Default()

	data, src, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", src, err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func readConfigFile(path string) ([]byte, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("read config: %w", err)
		}
		return data, path, nil
	}
	for _, p := range DefaultPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, fmt.Errorf("read config: %w", err)
		}
	}
	return nil, "", nil
}
