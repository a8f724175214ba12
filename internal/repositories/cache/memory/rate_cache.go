package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
)

// RateCache keeps the rate list in process memory. Contents do not survive a restart.
type RateCache struct {
	mu    sync.RWMutex
	rates []domain.ConversionRate
}

// NewRateCache creates an empty RateCache.
func NewRateCache() *RateCache {
	return &RateCache{}
}

var _ portsrepo.RateCache = (*RateCache)(nil)

// Load implements portsrepo.RateCache.
func (c *RateCache) Load(_ context.Context) ([]domain.ConversionRate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rates == nil {
		return nil, nil
	}
	return append([]domain.ConversionRate(nil), c.rates...), nil
}

// Store implements portsrepo.RateCache.
func (c *RateCache) Store(_ context.Context, rates []domain.ConversionRate) error {
	c.mu.Lock()
	c.rates = append([]domain.ConversionRate(nil), rates...)
	c.mu.Unlock()
	return nil
}
