package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("IS_PRODUCTION", "false")
	t.Setenv("RATE_ADMIN_IDS", "")
	t.Setenv("LIVE_RATE_MAX_AGE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.RateAdminIDs)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.RateRefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.LiveRateMaxAge)
	assert.Equal(t, time.Duration(0), cfg.RateCacheTTL)
	assert.Equal(t, []domain.CurrencyCode{"XOF", "USD"}, cfg.BalanceDisplayOrder)
	assert.Equal(t, domain.CurrencyCode("XOF"), cfg.FallbackRate.FromCurrency)
	assert.Equal(t, domain.CurrencyCode("USD"), cfg.FallbackRate.ToCurrency)
	assert.True(t, decimal.RequireFromString("0.00165").Equal(cfg.FallbackRate.Rate))
	assert.True(t, decimal.NewFromInt(605).Equal(cfg.FallbackRate.InverseRate))
	assert.Equal(t, int32(2), cfg.Precision.Places("USD"))
	assert.Equal(t, int32(0), cfg.Precision.Places("XOF"))
	assert.Equal(t, "10-M", cfg.WithdrawalRateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_REFRESH_INTERVAL", "30s")
	t.Setenv("BALANCE_DISPLAY_ORDER", "usd, ghs")
	t.Setenv("CURRENCY_PRECISION", "USD:2,GHS:2")
	t.Setenv("FALLBACK_RATE_FROM", "eur")
	t.Setenv("FALLBACK_RATE_TO", "usd")
	t.Setenv("FALLBACK_RATE", "1.25")
	t.Setenv("FALLBACK_INVERSE_RATE", "0.8")
	t.Setenv("RATE_ADMIN_IDS", "ops-1, ops-2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RateRefreshInterval)
	assert.Equal(t, []domain.CurrencyCode{"USD", "GHS"}, cfg.BalanceDisplayOrder)
	assert.Equal(t, int32(2), cfg.Precision.Places("GHS"))
	assert.Equal(t, domain.CurrencyCode("EUR"), cfg.FallbackRate.FromCurrency)
	assert.Equal(t, []string{"ops-1", "ops-2"}, cfg.RateAdminIDs)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("RATE_REFRESH_INTERVAL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.RateRefreshInterval)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad precision", "CURRENCY_PRECISION", "USD=2"},
		{"bad display order", "BALANCE_DISPLAY_ORDER", "XOF,DOLLARS"},
		{"non-positive fallback", "FALLBACK_RATE", "0"},
		{"same fallback pair", "FALLBACK_RATE_TO", "XOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
