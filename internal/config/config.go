// If you are AI: This file defines the configuration structure for scriptvar.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"scriptvar/internal/core/jsvar"
)

// Config holds the complete server configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Serializer SerializerConfig `yaml:"serializer"`
	Cache      CacheConfig      `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`
	Documents  []DocumentConfig `yaml:"documents,omitempty"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	HTTPPort        int           `yaml:"http_port"`        // Port for all HTTP services
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`   // Request body limit for ad-hoc rendering
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // Grace period for in-flight requests
}

// SerializerConfig mirrors jsvar.Options plus the default variable name.
type SerializerConfig struct {
	StrictNull bool   `yaml:"strict_null"`
	Strict     bool   `yaml:"strict"`
	MaxDepth   int    `yaml:"max_depth"` // 0 means unlimited
	VarName    string `yaml:"var_name"`
}

// CacheConfig sizes the render cache for ad-hoc requests.
type CacheConfig struct {
	Size *int `yaml:"size"` // nil selects the default, 0 disables
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // logfmt or json
}

// DocumentConfig names a file served as a script snippet.
type DocumentConfig struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	VarName string `yaml:"var_name,omitempty"`
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes and applies defaults.
// Empty input yields the default configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true) // Reject unknown fields

		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Serializer.VarName == "" {
		c.Serializer.VarName = jsvar.DefaultVarName
	}
	if c.Cache.Size == nil {
		size := 256
		c.Cache.Size = &size
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "logfmt"
	}
	for i := range c.Documents {
		if c.Documents[i].VarName == "" {
			c.Documents[i].VarName = c.Serializer.VarName
		}
	}
}

// Options converts the serializer section to jsvar options.
func (s SerializerConfig) Options() jsvar.Options {
	return jsvar.Options{
		StrictNull: s.StrictNull,
		Strict:     s.Strict,
		MaxDepth:   s.MaxDepth,
	}
}
