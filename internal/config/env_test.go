package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedStructs(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "super-secret")
	t.Setenv("APP_TOKEN_ISSUER", "trailhead-test")
	t.Setenv("APP_TOKEN_DURATION", "2160h")
	t.Setenv("APP_RESET_TOKEN_DURATION", "10m")
	t.Setenv("APP_BCRYPT_COST", "12")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/trailhead")
	t.Setenv("SERVER_ADDRESS", "localhost:9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "15s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "super-secret", cfg.App.TokenSignKey)
	assert.Equal(t, "trailhead-test", cfg.App.TokenIssuer)
	assert.Equal(t, 90*24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.App.ResetTokenDuration)
	assert.Equal(t, 12, cfg.App.BcryptCost)
	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.Equal(t, "postgres://localhost/trailhead", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
}

func TestParseEnv_CORSOriginsCommaSeparated(t *testing.T) {
	t.Setenv("SERVER_CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t,
		[]string{"https://app.example.com", "https://admin.example.com"},
		cfg.Server.CORSAllowedOrigins,
	)
}

func TestParseEnv_EmptyEnvironmentLeavesZeroValues(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Zero(t, cfg.App.TokenDuration)
	assert.Empty(t, cfg.Storage.DB.DSN)
}
