package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the key the rate list is stored under when none is configured.
const DefaultKey = "merchant_payments:conversion_rates"

// NewClient returns a UniversalClient; several addresses select a cluster client.
func NewClient(addrs []string, password string, db int) redis.UniversalClient {
	if len(addrs) > 1 {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Password: password,
		})
	}
	return redis.NewClient(&redis.Options{
		Addr:     addrs[0],
		Password: password,
		DB:       db,
	})
}

// RateCache stores the rate list as one JSON document.
type RateCache struct {
	client redis.UniversalClient // works with both single and cluster
	key    string
	ttl    time.Duration
}

// NewRateCache creates a RateCache. A zero ttl keeps the entry until it is replaced.
func NewRateCache(client redis.UniversalClient, key string, ttl time.Duration) *RateCache {
	if key == "" {
		key = DefaultKey
	}
	return &RateCache{client: client, key: key, ttl: ttl}
}

var _ portsrepo.RateCache = (*RateCache)(nil)

// Load implements portsrepo.RateCache.
func (c *RateCache) Load(ctx context.Context) ([]domain.ConversionRate, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rate cache: %w", err)
	}
	var rates []domain.ConversionRate
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("failed to decode rate cache: %w", err)
	}
	return rates, nil
}

// Store implements portsrepo.RateCache.
func (c *RateCache) Store(ctx context.Context, rates []domain.ConversionRate) error {
	raw, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to encode rate cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *RateCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
