// Package config provides configuration loading and management for sdml.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/sdml/export"
	"github.com/c360studio/sdml/generate"
)

// Config represents the complete sdml configuration
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Output   OutputConfig   `yaml:"output"`
	Modules  ModulesConfig  `yaml:"modules"`
	NATS     NATSConfig     `yaml:"nats"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

// GenerateConfig configures graph lowering
type GenerateConfig struct {
	// IncludeSourceLocation emits source span triples
	IncludeSourceLocation bool `yaml:"include_source_location"`
	// SequenceEncoding is "positional" (default) or "list"
	SequenceEncoding string `yaml:"sequence_encoding"`
}

// OutputConfig configures serialization
type OutputConfig struct {
	// Format is turtle, ntriples or jsonld
	Format string `yaml:"format"`
	// Color forces ANSI colors on or off; unset means colorize terminals only
	Color *bool `yaml:"color,omitempty"`
}

// ModulesConfig locates module documents
type ModulesConfig struct {
	// Paths are doublestar glob patterns
	Paths []string `yaml:"paths"`
}

// NATSConfig configures graph publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Subject receives serialized module documents
	Subject string `yaml:"subject"`
	// Stream is created or updated on connect when set
	Stream string `yaml:"stream"`
	// Entities also publishes one graph-ingest message per subject
	Entities *bool `yaml:"entities,omitempty"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	// Debounce coalesces bursts of file events
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig configures the CLI logger
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			IncludeSourceLocation: false,
			SequenceEncoding:      generate.Positional.String(),
		},
		Output: OutputConfig{
			Format: string(export.FormatTurtle),
		},
		Modules: ModulesConfig{
			Paths: []string{"**/*.sdml.yaml"},
		},
		NATS: NATSConfig{
			URL:     "", // Disabled
			Subject: "sdml.graph.document",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := generate.ParseSequenceEncoding(c.Generate.SequenceEncoding); err != nil {
		return fmt.Errorf("generate.sequence_encoding: %w", err)
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if len(c.Modules.Paths) == 0 {
		return fmt.Errorf("modules.paths is required")
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject is required when nats.url is set")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// GenerateOptions converts the generate section into lowering options.
func (c *Config) GenerateOptions() []generate.Option {
	encoding, _ := generate.ParseSequenceEncoding(c.Generate.SequenceEncoding)
	return []generate.Option{
		generate.WithSourceLocation(c.Generate.IncludeSourceLocation),
		generate.WithSequenceEncoding(encoding),
	}
}

// Format returns the parsed output format.
func (c *Config) Format() (export.Format, error) {
	return export.ParseFormat(c.Output.Format)
}

// PublishEntities reports whether per-subject entity messages are enabled.
func (c *Config) PublishEntities() bool {
	return c.NATS.Entities == nil || *c.NATS.Entities
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Generate
	if other.Generate.IncludeSourceLocation {
		c.Generate.IncludeSourceLocation = true
	}
	if other.Generate.SequenceEncoding != "" {
		c.Generate.SequenceEncoding = other.Generate.SequenceEncoding
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Color != nil {
		c.Output.Color = other.Output.Color
	}

	// Modules
	if len(other.Modules.Paths) > 0 {
		c.Modules.Paths = other.Modules.Paths
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.NATS.Stream != "" {
		c.NATS.Stream = other.NATS.Stream
	}
	if other.NATS.Entities != nil {
		c.NATS.Entities = other.NATS.Entities
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
