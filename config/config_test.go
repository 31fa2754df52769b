package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET":   "secret",
		"STORE_DRIVER": "memory",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "kovan", cfg.MongoDatabase)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.GoogleClientID)
	assert.Equal(t, "http://localhost:8080/api/google/callback", cfg.GoogleRedirectURL)
}

func TestFromEnv_RequiresSecret(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"STORE_DRIVER": "memory"}))
	assert.Error(t, err)
}

func TestFromEnv_MongoNeedsURI(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"JWT_SECRET": "s"}))
	assert.Error(t, err)

	cfg, err := FromEnv(env(map[string]string{"JWT_SECRET": "s", "MONGODB_URI": "mongodb://localhost:27017"}))
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET":      "s",
		"STORE_DRIVER":    "memory",
		"TOKEN_TTL":       "2h",
		"RATE_LIMIT":      "5",
		"ALLOWED_ORIGINS": " https://kovan.org , ,https://www.kovan.org",
	}))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, []string{"https://kovan.org", "https://www.kovan.org"}, cfg.AllowedOrigins)
}

func TestFromEnv_UnknownDriver(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"}))
	assert.Error(t, err)
}
