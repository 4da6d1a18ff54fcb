package pricecache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"tarkov-price-sync/internal/logger"
	"tarkov-price-sync/internal/metrics"
	"tarkov-price-sync/pkg/utils"
)

// FileCache persists the last-known-good price as a small JSON file. It is
// the default backend: one record, overwritten on every successful fetch,
// read back only while younger than the TTL.
type FileCache struct {
	path     string
	itemID   string
	gameMode string
	ttl      time.Duration
}

// NewFileCache creates a file-backed price cache for one tracked item.
func NewFileCache(path, itemID, gameMode string, ttl time.Duration) *FileCache {
	return &FileCache{
		path:     path,
		itemID:   itemID,
		gameMode: gameMode,
		ttl:      ttl,
	}
}

// Backend identifies this implementation in logs and metrics.
func (c *FileCache) Backend() string { return "file" }

// Save overwrites the cache file with the given price and a fresh timestamp,
// creating the cache directory if needed. Failures are logged and returned,
// but callers treat them as non-fatal.
func (c *FileCache) Save(ctx context.Context, price int64) error {
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

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			metrics.CacheWriteErrorsTotal.WithLabelValues(c.Backend()).Inc()
			log.WithError(err).WithField("path", c.path).Warn("Failed to create cache directory")
			return err
		}
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		metrics.CacheWriteErrorsTotal.WithLabelValues(c.Backend()).Inc()
		log.WithError(err).WithField("path", c.path).Warn("Failed to write cache file")
		return err
	}

	log.WithFields(map[string]interface{}{
		"path":  c.path,
		"price": price,
	}).Debug("Cache record written")
	return nil
}

// Load returns the cached price if a record exists, carries a positive price
// and is still within the TTL. Stale records are reported as absent but left
// on disk; any read or parse failure is swallowed and reported as absent.
func (c *FileCache) Load(ctx context.Context) (int64, bool) {
	log := logger.WithCycle(ctx)

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", c.path).Debug("No cache file present")
		} else {
			log.WithError(err).WithField("path", c.path).Warn("Failed to read cache file")
		}
		metrics.CacheMissesTotal.WithLabelValues(c.Backend()).Inc()
		return 0, false
	}

	rec, err := decodeRecord(data, c.itemID)
	if err != nil {
		log.WithError(err).WithField("path", c.path).Warn("Discarding unreadable cache record")
		metrics.CacheMissesTotal.WithLabelValues(c.Backend()).Inc()
		return 0, false
	}

	return c.judge(ctx, rec)
}

// judge applies the shared validity rules to a decoded record.
func (c *FileCache) judge(ctx context.Context, rec record) (int64, bool) {
	log := logger.WithCycle(ctx)
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
