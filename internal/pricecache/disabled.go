package pricecache

import (
	"context"

	"tarkov-price-sync/internal/logger"
)

// DisabledCache is selected when caching is turned off in the config. Save
// drops the write and Load always reports absent, so the engine's code path
// stays identical with caching on or off.
type DisabledCache struct{}

// NewDisabledCache creates the no-op cache.
func NewDisabledCache() *DisabledCache {
	return &DisabledCache{}
}

// Backend identifies this implementation in logs and metrics.
func (c *DisabledCache) Backend() string { return "disabled" }

// Save is a no-op.
func (c *DisabledCache) Save(ctx context.Context, price int64) error {
	logger.WithCycle(ctx).Debug("Caching disabled, dropping price write")
	return nil
}

// Load always reports absent.
func (c *DisabledCache) Load(ctx context.Context) (int64, bool) {
	logger.WithCycle(ctx).Debug("Caching disabled, no cached price")
	return 0, false
}
