package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/mtlximport"
)

// Config holds mtlximport configuration.
type Config struct {
	// Dialect is "current", "legacy" or a host version such as "19.5".
	Dialect string `yaml:"dialect"`

	// Texture scanning
	Extensions              []string `yaml:"extensions"`
	CaseSensitiveExtensions bool     `yaml:"case_sensitive_extensions"`

	// Patterns adds or replaces filename substrings per channel key.
	Patterns map[string][]string `yaml:"patterns,omitempty"`
	// ReplacePatterns drops the built-in substrings of overridden channels instead of extending them.
	ReplacePatterns bool `yaml:"replace_patterns"`

	// Preset is a default settings preset applied before command line toggles.
	Preset string `yaml:"preset,omitempty"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // human readable console output
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Dialect:    "current",
		Extensions: []string{"jpg", "exr", "png"},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		data = nil
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks dialect and pattern channel keys.
func (c *Config) Validate() error {
	if _, err := mtlximport.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("config dialect: %w", err)
	}
	for key := range c.Patterns {
		if _, ok := mtlximport.ParseChannel(key); !ok {
			return fmt.Errorf("config patterns: unknown channel %q", key)
		}
	}
	return nil
}

// DialectValue returns the parsed dialect.
func (c *Config) DialectValue() mtlximport.Dialect {
	d, err := mtlximport.ParseDialect(c.Dialect)
	if err != nil {
		return mtlximport.DialectCurrent
	}
	return d
}

// PatternTable merges configured patterns onto the built-in table.
func (c *Config) PatternTable() mtlximport.PatternTable {
	table := mtlximport.DefaultPatterns()
	for key, subs := range c.Patterns {
		ch, ok := mtlximport.ParseChannel(key)
		if !ok {
			continue
		}
		subs = lo.Map(subs, func(s string, _ int) string { return strings.ToLower(strings.TrimSpace(s)) })
		if c.ReplacePatterns {
			table[ch] = lo.Uniq(lo.Compact(subs))
			continue
		}
		table[ch] = lo.Uniq(lo.Compact(append(table[ch], subs...)))
	}

	return table
}

// ScanOptions returns scanner options for the library.
func (c *Config) ScanOptions() *mtlximport.ScanOptions {
	return &mtlximport.ScanOptions{
		Extensions:             c.Extensions,
		DisableCaseInsensitive: c.CaseSensitiveExtensions,
	}
}

// ValidateOptions returns validator options checking files under root
// against the configured extensions.
func (c *Config) ValidateOptions(root string) *mtlximport.ValidateOptions {
	return &mtlximport.ValidateOptions{
		TextureRoot: root,
		CheckFiles:  true,
		Extensions:  c.Extensions,
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MTLXIMPORT_DIALECT"); v != "" {
		c.Dialect = v
	}
	if v := os.Getenv("MTLXIMPORT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MTLXIMPORT_PRESET"); v != "" {
		c.Preset = v
	}
}
