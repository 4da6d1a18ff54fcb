package pricecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tarkov-price-sync/internal/logger"
	"tarkov-price-sync/internal/metrics"
	"tarkov-price-sync/pkg/utils"
)

// RedisCache stores the same record as FileCache in Redis, for hosts that
// already run one. No Redis TTL is set: validity is judged by the record's
// own lastUpdate timestamp so stale entries read as absent without being
// deleted, matching the file backend.
type RedisCache struct {
	client   *redis.Client
	itemID   string
	gameMode string
	ttl      time.Duration
}

// NewRedisCacheWithClient wraps an existing Redis client.
func NewRedisCacheWithClient(client *redis.Client, itemID, gameMode string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:   client,
		itemID:   itemID,
		gameMode: gameMode,
		ttl:      ttl,
	}
}

// Backend identifies this implementation in logs and metrics.
func (c *RedisCache) Backend() string { return "redis" }

func (c *RedisCache) key() string {
	return fmt.Sprintf("price:%s:%s", c.itemID, c.gameMode)
}

// Save overwrites the stored record with the given price and a fresh
// timestamp.
func (c *RedisCache) Save(ctx context.Context, price int64) error {
	log := logger.WithCycle(ctx)

	rec := record{
		ItemID:     c.itemID,
		Price:      price,
		GameMode:   c.gameMode,
		LastUpdate: time.Now().Unix(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		metrics.CacheWriteErrorsTotal.WithLabelValues(c.Backend()).Inc()
		log.WithError(err).Warn("Failed to encode cache record")
		return err
	}

	if err := c.client.Set(ctx, c.key(), string(data), 0).Err(); err != nil {
		metrics.CacheWriteErrorsTotal.WithLabelValues(c.Backend()).Inc()
		log.WithError(err).WithField("key", c.key()).Warn("Failed to write cache record to Redis")
		return err
	}

	log.WithFields(map[string]interface{}{
		"key":   c.key(),
		"price": price,
	}).Debug("Cache record written")
	return nil
}

// Load returns the cached price when a valid, fresh record exists. Every
// failure mode reads as absent.
func (c *RedisCache) Load(ctx context.Context) (int64, bool) {
	log := logger.WithCycle(ctx)

	data, err := c.client.Get(ctx, c.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.WithField("key", c.key()).Debug("No cache record present")
		} else {
			log.WithError(err).WithField("key", c.key()).Warn("Failed to read cache record from Redis")
		}
		metrics.CacheMissesTotal.WithLabelValues(c.Backend()).Inc()
		return 0, false
	}

	rec, err := decodeRecord([]byte(data), c.itemID)
	if err != nil {
		log.WithError(err).WithField("key", c.key()).Warn("Discarding unreadable cache record")
		metrics.CacheMissesTotal.WithLabelValues(c.Backend()).Inc()
		return 0, false
	}

	age := utils.AgeOf(rec.LastUpdate)

	if rec.Price <= 0 {
		log.WithField("price", rec.Price).Warn("Cached price is not positive, treating as absent")
		metrics.CacheMissesTotal.WithLabelValues(c.Backend()).Inc()
		return 0, false
	}

	if utils.IsTimestampStale(time.Unix(rec.LastUpdate, 0), c.ttl) {
		log.WithFields(map[string]interface{}{
			"age_hours": age.Hours(),
			"ttl_hours": c.ttl.Hours(),
		}).Info("Cache record is stale, treating as absent")
		metrics.CacheStaleTotal.WithLabelValues(c.Backend()).Inc()
		return 0, false
	}

	log.WithFields(map[string]interface{}{
		"age_hours": age.Hours(),
		"ttl_hours": c.ttl.Hours(),
		"price":     rec.Price,
	}).Info("Cache record is valid")
	metrics.CacheHitsTotal.WithLabelValues(c.Backend()).Inc()
	return rec.Price, true
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
