package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the default config file name inside the app dir.
	FileName = "config.yaml"

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	dirMode  = 0700
	fileMode = 0600
)

// ErrInvalidFormat is returned for an output format other than text, json or yaml.
var ErrInvalidFormat = errors.New("invalid output format")

// Config represents app config object.
type Config struct {
	Format   string `yaml:"format"`
	Hidden   bool   `yaml:"hidden"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	return &Config{
		Format:   FormatText,
		Hidden:   false,
		LogLevel: "info",
	}
}

// NormalizeFormat lower-cases the format and maps yml to yaml.
// An empty format means text.
func NormalizeFormat(f string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, f)
	}
}

// Validate normalizes the config in place.
func (c *Config) Validate() error {
	f, err := NormalizeFormat(c.Format)
	if err != nil {
		return err
	}
	c.Format = f
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// Save writes the config to path, creating the parent dir if needed.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Load reads the config at path. A missing file yields the defaults,
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshalling config file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return c, nil
}

// DefaultPath returns $HOME/.<name>/config.yaml, or a path in the
// current dir when the home dir can't be resolved. Nothing is created.
func DefaultPath(name string) string {
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug("error getting home dir, using current dir instead", "error", err)
		return filepath.Join(".", name, FileName)
	}
	return filepath.Join(home, name, FileName)
}
