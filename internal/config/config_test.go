package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  mode: release
jwt:
  signing_key: secret
  access_token_ttl: 30m
state:
  backend: redis
pricing:
  premium: 12000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "secret", cfg.JWT.SigningKey)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "redis", cfg.State.Backend)
	assert.Equal(t, int64(12000), cfg.Pricing.Premium)
	// untouched keys keep their defaults
	assert.Equal(t, int64(19900), cfg.Pricing.PremiumPlus)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.State.Backend)
	assert.Equal(t, 15*time.Second, cfg.Server.GracefulShutdownTimeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("DATABASE_POSTGRES_HOST", "db.internal")
	t.Setenv("JWT_SIGNING_KEY", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "from-env", cfg.JWT.SigningKey)
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "h", Port: 5432, User: "u", Password: "p", DB: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable TimeZone=UTC", cfg.DSN())
}
