package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_TTL", "ALLOWED_ORIGINS", "MAX_UPLOAD_MB", "CREDENTIAL_BACKEND", "IMAGE_BACKEND"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "mongo", cfg.CredentialBackend)
	assert.Equal(t, "disk", cfg.ImageBackend)
	assert.Equal(t, "/login", cfg.LoginPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SEED_USERNAME", "admin")
	t.Setenv("SEED_PASSWORD", "secret")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "admin", cfg.SeedUsername)
	assert.Equal(t, "secret", cfg.SeedPassword)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "thirty days")
	assert.Equal(t, 30*24*time.Hour, Load().SessionTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{SessionSecret: "k", CredentialBackend: "mongo", ImageBackend: "disk"}
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.SessionSecret = ""
	assert.ErrorContains(t, c.Validate(), "SECRET_API_KEY")

	c = valid()
	c.CredentialBackend = "postgres"
	assert.ErrorContains(t, c.Validate(), "POSTGRES_DSN")
	c.PostgresDSN = "postgres://localhost/db"
	assert.NoError(t, c.Validate())

	c = valid()
	c.CredentialBackend = "memory"
	assert.ErrorContains(t, c.Validate(), "SEED_USERNAME")
	c.SeedUsername = "admin"
	assert.ErrorContains(t, c.Validate(), "SEED_PASSWORD")
	c.SeedPassword = "secret"
	assert.NoError(t, c.Validate())

	c = valid()
	c.ImageBackend = "s3"
	assert.Error(t, c.Validate())
}
