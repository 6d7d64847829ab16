// If you are AI: This file contains unit tests for configuration loading and validation.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "config", cfg.Serializer.VarName)
	assert.Equal(t, 256, *cfg.Cache.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "logfmt", cfg.Log.Format)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scriptvar.yaml")
	content := `server:
  http_port: 9000
  shutdown_timeout: 2s
serializer:
  strict_null: true
  max_depth: 64
  var_name: page
cache:
  size: 0
log:
  level: debug
  format: json
documents:
  - name: settings
    path: docs/settings.yaml
  - name: answers
    path: docs/answers.json
    var_name: answers
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 0, *cfg.Cache.Size)
	assert.Equal(t, "page", cfg.Documents[0].VarName)
	assert.Equal(t, "answers", cfg.Documents[1].VarName)

	opts := cfg.Serializer.Options()
	assert.True(t, opts.StrictNull)
	assert.False(t, opts.Strict)
	assert.Equal(t, 64, opts.MaxDepth)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("server:\n  rtmp_port: 1935\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"port", "server:\n  http_port: 70000\n", "http_port"},
		{"body", "server:\n  max_body_bytes: -1\n", "max_body_bytes"},
		{"depth", "serializer:\n  max_depth: -1\n", "max_depth"},
		{"var name", "serializer:\n  var_name: 'a-b'\n", "var_name"},
		{"cache", "cache:\n  size: -5\n", "cache config"},
		{"level", "log:\n  level: loud\n", "level"},
		{"format", "log:\n  format: xml\n", "format"},
		{"doc name", "documents:\n  - path: a.json\n", "name is required"},
		{"doc path", "documents:\n  - name: a\n", "path is required"},
		{"doc var", "documents:\n  - name: a\n    path: a.json\n    var_name: if\n", "not a valid identifier"},
		{"duplicate", "documents:\n  - name: a\n    path: a.json\n  - name: a\n    path: b.json\n", "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load("../../configs/scriptvar.example.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Documents, 1)
	assert.Equal(t, "answers", cfg.Documents[0].VarName)
}
