package pricecache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tarkov-price-sync/internal/config"
	"tarkov-price-sync/internal/domain/interfaces"
	"tarkov-price-sync/internal/logger"
)

// NewFromConfig creates the price cache selected by the configuration for
// the given tracked item. When caching is disabled the returned cache is the
// no-op implementation regardless of backend.
func NewFromConfig(cfg *config.Config, itemID string) (interfaces.PriceCache, error) {
	log := logger.GetLogger()

	if !cfg.CacheEnabled {
		log.Info("Price caching disabled by configuration")
		return NewDisabledCache(), nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendFile:
		log.WithField("path", cfg.Cache.FilePath).Info("Creating file price cache")
		return NewFileCache(cfg.Cache.FilePath, itemID, cfg.GameMode, cfg.CacheTTL()), nil

	case config.CacheBackendRedis:
		log.WithFields(map[string]interface{}{
			"addr":     cfg.Cache.Redis.Addr,
			"database": cfg.Cache.Redis.DB,
		}).Info("Creating Redis price cache")
		return newRedisCache(cfg, itemID)

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

// newRedisCache creates and tests the Redis connection.
func newRedisCache(cfg *config.Config, itemID string) (interfaces.PriceCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Cache.Redis.Addr, err)
	}

	return NewRedisCacheWithClient(rdb, itemID, cfg.GameMode, cfg.CacheTTL()), nil
}
