package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault 内置默认值
func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Format.RightJust)
	assert.Equal(t, "output.csv", cfg.Format.DefaultOutputFilename)
	assert.Equal(t, 8, cfg.Format.Concurrent)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.True(t, cfg.Format.OutputFilter.CaseInsensitive)
	assert.Contains(t, cfg.Format.OutputFilter.Contains, "--more--")
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

// TestLoadFromFile 配置文件覆盖默认值
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
format:
  right_just: 24
  default_output_filename: parsed.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Format.RightJust)
	assert.Equal(t, "parsed.csv", cfg.Format.DefaultOutputFilename)
	assert.Equal(t, "debug", cfg.Log.Level)
	// 未覆盖的键保持默认值
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Same(t, cfg, Get())
}

// TestLoadMissingFile 配置文件不存在时报错
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/config.yaml")
	assert.Error(t, err)
}
