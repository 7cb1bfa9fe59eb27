package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	for _, k := range []string{"APP_ENV", "PORT", "DB_PORT", "JWT_SECRET", "JWT_TTL", "BCRYPT_COST", "RATE_LIMIT_WINDOW", "REDIS_HOST"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, devSigningKey, cfg.SigningKey)
	assert.Zero(t, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Empty(t, cfg.RedisHost)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("BCRYPT_COST", "12")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "prod-secret", cfg.SigningKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, 12, cfg.BcryptCost)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := Config{SigningKey: "k", BcryptCost: 10}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"missing key", func(c *Config) { c.SigningKey = "" }, false},
		{"dev key in production", func(c *Config) { c.AppEnv = "production"; c.SigningKey = devSigningKey }, false},
		{"cost too low", func(c *Config) { c.BcryptCost = 1 }, false},
		{"cost too high", func(c *Config) { c.BcryptCost = 99 }, false},
		{"negative ttl", func(c *Config) { c.TokenTTL = -time.Second }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
