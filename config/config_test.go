package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSLMODE", "JWT_SECRET", "TOKEN_TTL", "CONFIRMATION_TTL", "UPLOAD_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./uploads", cfg.Media.UploadDir)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "host=localhost user=postgres password= dbname=techfesia port=5432 sslmode=disable TimeZone=UTC", cfg.Database.DSN())
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
  public_url: https://fest.example.com
database:
  host: db.internal
  name: fest
auth:
  jwt_secret: from-file
  token_ttl: 2h
media:
  upload_dir: /srv/media
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "fest_env")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CONFIRMATION_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://fest.example.com", cfg.Server.PublicURL)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "fest_env", cfg.Database.Name)
	assert.Equal(t, "5432", cfg.Database.Port, "unset keys keep their defaults")
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.ConfirmationTTL)
	assert.Equal(t, "/srv/media", cfg.Media.UploadDir)
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", "")
		t.Setenv("TOKEN_TTL", "forever")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "invalid TOKEN_TTL")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := map[string]func(cfg *Config){
		"empty secret":          func(cfg *Config) { cfg.Auth.JWTSecret = "" },
		"non numeric port":      func(cfg *Config) { cfg.Server.Port = "http" },
		"zero token ttl":        func(cfg *Config) { cfg.Auth.TokenTTL = 0 },
		"staff without details": func(cfg *Config) { cfg.Staff.Username = "admin" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
