package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  host: "0.0.0.0"
mongo:
  uri: "mongodb://localhost:27017/wedding"
auth:
  jwt_secret: "s3cret"
  admin_username: "admin"
  admin_password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "wedding", cfg.Mongo.Database)
	assert.Equal(t, 100, cfg.Auth.TokenLifetimeDays)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, "memory-cards", cfg.AWS.KeyPrefix)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://prod-host:27017/site")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://prod-host:27017/site", cfg.Mongo.URI)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.uri")
	assert.Contains(t, err.Error(), "auth.jwt_secret")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not a map"))
	assert.Error(t, err)
}
