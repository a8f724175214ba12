package rediscache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := NewClient([]string{addr}, os.Getenv("REDIS_PASSWORD"), 0)
	defer client.Close()

	key := "test:rates:" + uuid.NewString()
	defer client.Del(ctx, key)
	cache := NewRateCache(client, key, time.Minute)
	require.NoError(t, cache.Ping(ctx))

	rates, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rates)

	want := []domain.ConversionRate{{
		ID:           "r1",
		FromCurrency: "XOF",
		ToCurrency:   "USD",
		Rate:         decimal.RequireFromString("0.00165"),
		InverseRate:  decimal.NewFromInt(605),
	}}
	require.NoError(t, cache.Store(ctx, want))

	got, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].FromCurrency, got[0].FromCurrency)
	assert.True(t, want[0].Rate.Equal(got[0].Rate))
	assert.True(t, want[0].InverseRate.Equal(got[0].InverseRate))
}

func TestNewRateCache_DefaultKey(t *testing.T) {
	c := NewRateCache(nil, "", 0)
	assert.Equal(t, DefaultKey, c.key)
}
