// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"

	"scriptvar/internal/core/jsvar"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Serializer.Validate(); err != nil {
		return fmt.Errorf("serializer config: %w", err)
	}
	if c.Cache.Size != nil && *c.Cache.Size < 0 {
		return fmt.Errorf("cache config: size must be non-negative, got %d", *c.Cache.Size)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	seen := make(map[string]bool, len(c.Documents))
	for i, doc := range c.Documents {
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("documents[%d]: %w", i, err)
		}
		if seen[doc.Name] {
			return fmt.Errorf("documents[%d]: duplicate name %q", i, doc.Name)
		}
		seen[doc.Name] = true
	}
	return nil
}

// Validate checks server configuration values.
func (s *ServerConfig) Validate() error {
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", s.HTTPPort)
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", s.MaxBodyBytes)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", s.ShutdownTimeout)
	}
	return nil
}

// Validate checks serializer configuration values.
func (s *SerializerConfig) Validate() error {
	if s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", s.MaxDepth)
	}
	if !jsvar.ValidVarName(s.VarName) {
		return fmt.Errorf("var_name %q is not a valid identifier", s.VarName)
	}
	return nil
}

// Validate checks log configuration values.
func (l *LogConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error, got %q", l.Level)
	}
	switch l.Format {
	case "logfmt", "json":
	default:
		return fmt.Errorf("format must be logfmt or json, got %q", l.Format)
	}
	return nil
}

// Validate checks a single document entry.
func (d *DocumentConfig) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Path == "" {
		return fmt.Errorf("document %q: path is required", d.Name)
	}
	if !jsvar.ValidVarName(d.VarName) {
		return fmt.Errorf("document %q: var_name %q is not a valid identifier", d.Name, d.VarName)
	}
	return nil
}
