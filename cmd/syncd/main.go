package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tarkov-price-sync/internal/catalog"
	"tarkov-price-sync/internal/config"
	"tarkov-price-sync/internal/engine"
	"tarkov-price-sync/internal/logger"
	"tarkov-price-sync/internal/market"
	"tarkov-price-sync/internal/metrics"
	"tarkov-price-sync/internal/pricecache"
	"tarkov-price-sync/internal/web"
)

const version = "1.0.0"

func main() {
	// Load configuration; Load is total and never fails outward.
	cfg := config.NewStore(configPath()).Load()

	logger.SetEnabled(cfg.LoggingEnabled)
	logger.SetLogFormat(cfg.LogFormat)
	logger.SetLogLevel(cfg.LogLevel)
	log := logger.GetLogger()

	log.WithFields(map[string]interface{}{
		"item_name":        cfg.ItemName,
		"game_mode":        cfg.GameMode,
		"refresh_interval": cfg.RefreshInterval().String(),
	}).Info("Starting price sync service")

	// The host catalog supplies the tracked item record. A failed lookup
	// leaves the engine inert but never crashes the process.
	items := catalog.NewWithDefaults()
	trackedItem, found := items.Lookup(catalog.TrackedItemID)
	if !found {
		log.WithField("item_id", catalog.TrackedItemID).
			Error("Tracked item missing from catalog, price sync will stay inactive")
	}

	priceCache, err := pricecache.NewFromConfig(cfg, catalog.TrackedItemID)
	if err != nil {
		log.WithError(err).Warn("Configured cache backend unavailable, using file cache")
		priceCache = pricecache.NewFileCache(cfg.Cache.FilePath, catalog.TrackedItemID, cfg.GameMode, cfg.CacheTTL())
	}

	metrics.SetServiceInfo(version, cfg.Cache.Backend)

	fetcher := market.NewClient(cfg)
	eng := engine.New(trackedItem, fetcher, priceCache, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opsServer *web.Server
	if cfg.Ops.Enabled {
		opsServer = web.NewServer(eng, cfg.Ops.Port)
		go func() {
			if err := opsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Ops HTTP server failed")
			}
		}()
	}

	// Startup cycle runs immediately; periodic refresh is armed afterwards.
	eng.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	cancel()

	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := opsServer.Stop(shutdownCtx); err != nil {
			log.WithError(err).Error("Ops HTTP server forced to shut down")
		}
	}

	log.Info("Shutdown complete")
}

// configPath resolves the config file location, overridable for packaged
// installs.
func configPath() string {
	if path := os.Getenv("TPS_CONFIG_FILE"); path != "" {
		return path
	}
	return config.DefaultConfigPath
}
