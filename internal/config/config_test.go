package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimum environment for Load to succeed
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "ecoursehub")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpiry)
		assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiry)
		assert.Equal(t, "./uploads/avatars", cfg.AvatarBasePath)
		assert.Equal(t, "/media/avatars", cfg.AvatarBaseURL)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
		t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "15m")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	})

	t.Run("missing required variable", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("invalid port", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_PORT", "not-a-port")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "app",
		Password: "secret",
		DBName:   "ecoursehub",
	}

	// clientFoundRows keeps no-op UPDATEs (same values rewritten) from
	// reporting zero affected rows and being treated as missing records
	assert.Equal(t, "app:secret@tcp(localhost:3306)/ecoursehub?parseTime=true&charset=utf8mb4&clientFoundRows=true", cfg.DSN())
}
