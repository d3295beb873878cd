package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "shop.db", cfg.Database.Path)
	assert.Equal(t, "disk", cfg.Upload.Mode)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxSize)
	assert.True(t, cfg.Auth.Enabled)
	require.Len(t, cfg.Auth.Admins, 1)
	assert.Equal(t, "admin", cfg.Auth.Admins[0].Username)
}

func TestLoadConfigProductionUsesMemory(t *testing.T) {
	t.Setenv("NODE_ENV", "production")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "inline", cfg.Upload.Mode)
}

func TestLoadConfigExplicitDriverWinsInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://shop:secret@db:5432/shop")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://shop:secret@db:5432/shop", cfg.Database.DSN())
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8081"
  public_base_url: "https://shop.example.com"
database:
  driver: sqlite
  path: ":memory:"
  seed: false
upload:
  dir: /tmp/images
auth:
  token_ttl: 2h
  admins:
    - username: owner
      password: s3cret
      role: admin
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, "https://shop.example.com", cfg.Server.PublicBaseURL)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, "/tmp/images", cfg.Upload.Dir)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.Len(t, cfg.Auth.Admins, 1)
	assert.Equal(t, "owner", cfg.Auth.Admins[0].Username)
}

func TestLoadConfigAdminOverride(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "boss")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "boss", cfg.Auth.Admins[0].Username)
	assert.Equal(t, "hunter2", cfg.Auth.Admins[0].Password)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "PORT", "70000"},
		{"unknown driver", "DB_DRIVER", "mongodb"},
		{"unknown upload mode", "UPLOAD_MODE", "s3"},
		{"bad bool", "AUTH_ENABLED", "maybe"},
		{"bad ttl", "TOKEN_TTL", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
