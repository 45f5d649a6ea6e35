package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEMINAR_AUTH_JWT_SECRET", "0123456789abcdef")
	t.Setenv("SEMINAR_SERVER_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 30*time.Second, cfg.Cache.SeminarTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.MySQL.AutoMigrate)
	assert.Equal(t, float64(5), cfg.RateLimit.SigninRPS)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
auth:
  jwt_secret: "file-secret-long-enough"
  access_token_ttl: 1h
log:
  format: pretty
  level: debug
`), 0o600))
	t.Setenv("SEMINAR_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			MySQL:  MySQLConfig{DSN: "dsn"},
			Auth:   AuthConfig{JWTSecret: "0123456789abcdef", AccessTokenTTL: time.Hour},
			Log:    LogConfig{Format: "json"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"zero ttl", func(c *Config) { c.Auth.AccessTokenTTL = 0 }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"missing dsn", func(c *Config) { c.MySQL.DSN = "" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
