// Package config loads the optional dotnetproj tool configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the working directory.
const FileName = ".dotnetproj.yaml"

// ErrInvalidConfig is returned when a configuration file fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config is the dotnetproj tool configuration.
type Config struct {
	// IndentSize documents the formatter indentation. Only 2 is accepted.
	IndentSize int `yaml:"indent_size" validate:"eq=2"`

	SkipLegacyProjects bool   `yaml:"skip_legacy_projects"`
	LogLevel           string `yaml:"log_level" validate:"oneof=verbose debug info warn error"`

	Tracing TracingConfig `yaml:"tracing"`

	// MetricsFile, when set, receives the Prometheus text exposition at exit.
	MetricsFile string `yaml:"metrics_file"`
}

// TracingConfig selects the span exporter.
type TracingConfig struct {
	Exporter string `yaml:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint string `yaml:"endpoint" validate:"required_if=Exporter otlp"`
}

// NewDefaultConfig returns the configuration used when no file is found.
func NewDefaultConfig() *Config {
	return &Config{
		IndentSize: 2,
		LogLevel:   "warn",
		Tracing:    TracingConfig{Exporter: "none"},
	}
}

// DefaultConfigLocations returns the configuration paths to search in
// precedence order.
func DefaultConfigLocations() []string {
	var locations []string

	if cwd, err := os.Getwd(); err == nil {
		locations = append(locations, filepath.Join(cwd, FileName))
		locations = append(locations, filepath.Join(cwd, ".config", "dotnetproj.yaml"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".dotnetproj", "config.yaml"))
	}

	return locations
}

// FindConfigFile returns the first existing file of locations, or "".
func FindConfigFile(fs afero.Fs, locations []string) string {
	for _, loc := range locations {
		if exists, err := afero.Exists(fs, loc); err == nil && exists {
			return loc
		}
	}
	return ""
}

// LoadConfig reads and validates the file at path. Keys that are absent
// keep their default values; unknown keys are rejected.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates YAML configuration text.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load returns the configuration from explicit, or from the first default
// location that exists, or the defaults. The returned path is "" when no
// file was read.
func Load(fs afero.Fs, explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindConfigFile(fs, DefaultConfigLocations())
	}
	if path == "" {
		return NewDefaultConfig(), "", nil
	}

	cfg, err := LoadConfig(fs, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
