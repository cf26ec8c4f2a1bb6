package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage:
  driver: sqlite
  path: /tmp/students.db
  skip_seed: true
http_server:
  address: 0.0.0.0:9000
  cors_origins: ["http://a.test", "http://b.test"]
roster:
  variant: contacts
  base_url: http://api.test/students
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/students.db", cfg.StoragePath)
	assert.True(t, cfg.SkipSeed)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPServer.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "contacts", cfg.Variant)
	assert.Equal(t, "http://api.test/students", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	// untouched keys fall back to defaults
	assert.Equal(t, "localhost:3001", cfg.WebAddr)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: dev\n"))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.False(t, cfg.SkipSeed)
	assert.Equal(t, "localhost:8000", cfg.HTTPServer.Addr)
	assert.Equal(t, []string{"http://localhost:3001"}, cfg.CORSOrigins)
	assert.Equal(t, "majors", cfg.Variant)
	assert.Empty(t, cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROSTER_VARIANT", "contacts")
	t.Setenv("HTTP_SERVER_ADDR", "127.0.0.1:8081")

	cfg, err := Load(writeConfig(t, "roster:\n  variant: majors\n"))
	require.NoError(t, err)

	assert.Equal(t, "contacts", cfg.Variant)
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPServer.Addr)
}

func TestLoad_NoPathUsesEnv(t *testing.T) {
	t.Setenv("ROSTER_BASE_URL", "http://env.test/students")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env.test/students", cfg.BaseURL)
	assert.Equal(t, "dev", cfg.Env)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrNoConfig)
}
