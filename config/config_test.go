package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.False(t, cfg.Release())
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	content := "DATABASE_URL=postgres://db/store\nJWT_SECRET=from-file\nJWT_TTL=2h\nGIN_MODE=release\nCORS_ORIGINS= https://a.example , https://b.example\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "JWT_TTL", "GIN_MODE", "CORS_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("PORT", "9090")

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/store", cfg.DatabaseURL)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Release())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTTTL: time.Hour, RateLimitRPS: 1, RateLimitBurst: 1, UseHTTPS: true}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "TLS_CERT_FILE")
}
