// Package config loads the formatter settings shared by the CLI and the
// orchestrator from JSON or YAML files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig reports a configuration that failed validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	DefaultTagKey   = "structfmt"
	DefaultRenderer = "text"
	DefaultMaxDepth = 8
	DefaultLogLevel = "info"
)

// Config holds the formatter settings.
type Config struct {
	// TagKey is the struct tag consulted for skip and static markers.
	TagKey string `json:"tagKey" yaml:"tagKey"`
	// Renderer names the renderer used when a request does not pick one.
	Renderer string `json:"renderer" yaml:"renderer"`
	// Nested renders struct-valued fields recursively.
	Nested   bool `json:"nested" yaml:"nested"`
	MaxDepth int  `json:"maxDepth" yaml:"maxDepth"`
	Color    bool `json:"color" yaml:"color"`
	// Redact lists field names whose values are masked before rendering.
	Redact   []string `json:"redact" yaml:"redact"`
	LogLevel string   `json:"logLevel" yaml:"logLevel"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		TagKey:   DefaultTagKey,
		Renderer: DefaultRenderer,
		MaxDepth: DefaultMaxDepth,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the file at path. An empty path returns Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads path from fsys.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	if fsys == nil {
		return Config{}, errors.New("config: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data as JSON, falling back to YAML, then applies defaults and
// validates the result. source only labels errors; a .yaml or .yml extension
// skips the JSON attempt.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	cfg := Default()
	if !isYAML(source) {
		if err := json.Unmarshal(data, &cfg); err == nil {
			return finalize(cfg, source)
		}
		cfg = Default()
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return finalize(cfg, source)
}

// ApplyDefaults fills blank settings.
func (c *Config) ApplyDefaults() {
	c.TagKey = strings.TrimSpace(c.TagKey)
	if c.TagKey == "" {
		c.TagKey = DefaultTagKey
	}
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	if c.Renderer == "" {
		c.Renderer = DefaultRenderer
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	redact := c.Redact[:0:0]
	for _, name := range c.Redact {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			redact = append(redact, trimmed)
		}
	}
	c.Redact = redact
}

// Validate reports settings that cannot be used. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	var problems []string
	if c.MaxDepth < 0 {
		problems = append(problems, fmt.Sprintf("maxDepth must not be negative, got %d", c.MaxDepth))
	}
	if strings.ContainsAny(c.TagKey, " \t\":") {
		problems = append(problems, fmt.Sprintf("tagKey %q is not a valid struct tag key", c.TagKey))
	}
	if _, err := c.Level(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	level := c.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logLevel %q: %w", c.LogLevel, err)
	}
	return parsed, nil
}

func finalize(cfg Config, source string) (Config, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
