package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tarkov-price-sync/internal/config"
	"tarkov-price-sync/internal/domain/entities"
	"tarkov-price-sync/internal/domain/interfaces"
	"tarkov-price-sync/internal/logger"
	"tarkov-price-sync/internal/metrics"
)

// State is a refresh cycle's position in the Idle -> Fetching ->
// {Applied, Unchanged, FallenBack} -> Idle loop.
type State string

const (
	StateIdle       State = "idle"
	StateFetching   State = "fetching"
	StateApplied    State = "applied"
	StateUnchanged  State = "unchanged"
	StateFallenBack State = "fallen_back"
)

// Status is a point-in-time snapshot of the engine for the ops endpoints.
type Status struct {
	ItemID    string    `json:"item_id"`
	State     State     `json:"state"`
	Cycles    uint64    `json:"cycles"`
	LastCycle time.Time `json:"last_cycle"`
	LastPrice int64     `json:"last_price"`
}

// Engine keeps the tracked item's base price in sync with the market API,
// degrading to the cached last-known-good price when a fetch fails.
//
// All price mutation happens on the goroutine running Start: the first cycle
// and every ticker cycle execute sequentially, so a cycle that outlives the
// refresh interval simply delays the next tick rather than overlapping it.
type Engine struct {
	item    *entities.Item
	fetcher interfaces.PriceFetcher
	cache   interfaces.PriceCache
	cfg     *config.Config

	mu        sync.Mutex
	state     State
	cycles    uint64
	lastCycle time.Time
	lastPrice int64
}

// New creates a refresh engine for the given tracked item. A nil item is
// tolerated: the engine stays permanently inert instead of failing the host.
func New(item *entities.Item, fetcher interfaces.PriceFetcher, cache interfaces.PriceCache, cfg *config.Config) *Engine {
	return &Engine{
		item:    item,
		fetcher: fetcher,
		cache:   cache,
		cfg:     cfg,
		state:   StateIdle,
	}
}

// Start runs the startup cycle immediately, then arms the periodic ticker if
// periodic updates are enabled. It returns once the startup cycle (including
// any fallback handling) has completed; ticker cycles continue on a
// background goroutine until ctx is cancelled.
func (e *Engine) Start(ctx context.Context) {
	log := logger.GetLogger()

	if e.item == nil {
		log.Error("Tracked item not found in catalog, price sync stays inactive")
		return
	}

	e.RunCycle(logger.WithCycleID(ctx))

	if !e.cfg.PeriodicUpdatesEnabled {
		log.Info("Periodic updates disabled, startup sync only")
		return
	}

	go e.loop(ctx)
}

// loop drives ticker cycles for the life of the process. A failed cycle
// never cancels future ticks.
func (e *Engine) loop(ctx context.Context) {
	interval := e.cfg.RefreshInterval()

	logger.GetLogger().WithField("interval", interval.String()).
		Info("Periodic price refresh armed")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.GetLogger().Info("Periodic price refresh stopped")
			return
		case <-ticker.C:
			e.RunCycle(logger.WithCycleID(ctx))
		}
	}
}

// RunCycle executes one complete attempt-fetch -> apply-or-fallback sequence
// and reports the terminal state.
func (e *Engine) RunCycle(ctx context.Context) State {
	if e.item == nil {
		return StateIdle
	}

	e.setState(StateFetching)
	log := logger.WithCycle(ctx)
	log.WithField("item", e.item.Name).Info("Refreshing base price")

	var final State
	price, err := e.fetcher.FetchPrice(ctx)
	if err != nil {
		log.WithError(err).Warn("Fetch failed, degrading to cached price")
		final = e.fallback(ctx)
	} else {
		final = e.apply(ctx, price)
	}

	e.finishCycle(final)
	return final
}

// apply writes a freshly fetched price into the tracked item and persists it.
func (e *Engine) apply(ctx context.Context, price int64) State {
	old := e.item.BasePrice
	e.item.BasePrice = price
	delta := price - old

	logger.WithCycle(ctx).WithFields(map[string]interface{}{
		"old_price": old,
		"new_price": price,
		"delta":     fmt.Sprintf("%+d", delta),
	}).Info("Applied fresh base price")

	metrics.CurrentPrice.WithLabelValues(e.item.ID).Set(float64(price))

	// Cache write failures are already logged by the cache; a cycle never
	// fails because of one.
	_ = e.cache.Save(ctx, price)

	if delta == 0 {
		return StateUnchanged
	}
	return StateApplied
}

// fallback consults the cache after a failed fetch. The live price changes
// only when a valid cached price exists and differs from it.
func (e *Engine) fallback(ctx context.Context) State {
	log := logger.WithCycle(ctx)

	cached, ok := e.cache.Load(ctx)
	switch {
	case !ok:
		log.WithField("current_price", e.item.BasePrice).
			Info("No valid cached price, keeping current price")
	case cached == e.item.BasePrice:
		log.WithField("price", cached).
			Info("Cached price matches current price, no change")
	default:
		old := e.item.BasePrice
		e.item.BasePrice = cached
		log.WithFields(map[string]interface{}{
			"old_price": old,
			"new_price": cached,
			"delta":     fmt.Sprintf("%+d", cached-old),
		}).Info("Applied cached price as fallback")
		metrics.CurrentPrice.WithLabelValues(e.item.ID).Set(float64(cached))
	}

	return StateFallenBack
}

// setState records a transient state for status reporting.
func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// finishCycle closes the loop back to Idle and records the cycle outcome.
func (e *Engine) finishCycle(final State) {
	metrics.CyclesTotal.WithLabelValues(string(final)).Inc()

	e.mu.Lock()
	e.state = StateIdle
	e.cycles++
	e.lastCycle = time.Now()
	e.lastPrice = e.item.BasePrice
	e.mu.Unlock()
}

// Status returns a snapshot safe to read from other goroutines.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := Status{
		State:     e.state,
		Cycles:    e.cycles,
		LastCycle: e.lastCycle,
		LastPrice: e.lastPrice,
	}
	if e.item != nil {
		status.ItemID = e.item.ID
	}
	return status
}
