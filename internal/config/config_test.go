package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "storefront_session", cfg.Session.CookieName)
	assert.Equal(t, "stable", cfg.Catalog.DerivedMode)
	assert.Equal(t, []string{"wallet", "cod", "card", "upi"}, cfg.Checkout.PaymentMethods)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CHECKOUT_PAYMENT_METHODS", "wallet, cod ,")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CATALOG_DERIVED_SEED", "99")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"wallet", "cod"}, cfg.Checkout.PaymentMethods)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, int64(99), cfg.Catalog.Seed)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Security.RateLimitPerMinute)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "short secret", env: map[string]string{"SESSION_SECRET": "short"}, wantErr: "SESSION_SECRET"},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}, wantErr: "STORE_DRIVER"},
		{name: "bad derived mode", env: map[string]string{"CATALOG_DERIVED_MODE": "sometimes"}, wantErr: "CATALOG_DERIVED_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
