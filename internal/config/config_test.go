package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		BaseURL:               "https://conecta-saber-backend.onrender.com/api",
		RequestTimeoutSeconds: 30,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		BaseURL: "http://localhost:3333/api",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingBaseURL(t *testing.T) {
	cfg := &Config{
		RequestTimeoutSeconds: 10,
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_BaseURLNotAURL(t *testing.T) {
	cfg := &Config{
		BaseURL: "not a url",
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{
		BaseURL:               "http://localhost:3333/api",
		RequestTimeoutSeconds: -5,
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestRequestTimeout_Default(t *testing.T) {
	cfg := &Config{BaseURL: "http://localhost:3333/api"}
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
}

func TestRequestTimeout_Configured(t *testing.T) {
	cfg := &Config{BaseURL: "http://localhost:3333/api", RequestTimeoutSeconds: 30}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saber_config.test.yaml")

	content := []byte("baseURL: http://localhost:3333/api\nrequestTimeoutSeconds: 20\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333/api", cfg.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout())
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saber_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseURL: [oops"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
