package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, "user_session", cfg.Session.UserCookie)
	assert.Equal(t, "admin_session", cfg.Session.AdminCookie)
	assert.Equal(t, CartBackendPostgres, cfg.Cart.Backend)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "15")
	t.Setenv("CART_BACKEND", "Redis")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, CartBackendRedis, cfg.Cart.Backend)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsSharedCookieSlot(t *testing.T) {
	t.Setenv("SESSION_USER_COOKIE", "session")
	t.Setenv("SESSION_ADMIN_COOKIE", "session")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownCartBackend(t *testing.T) {
	t.Setenv("CART_BACKEND", "mongo")

	_, err := Load()
	require.Error(t, err)
}
