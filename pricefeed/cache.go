package pricefeed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hakimelghazi/trading-core/internal/engine"
)

// PriceCache stores latest prices for markets in memory.
type PriceCache struct {
	mu     sync.RWMutex
	prices map[engine.Market]float64
}

func NewPriceCache() *PriceCache {
	return &PriceCache{prices: make(map[engine.Market]float64)}
}

func (c *PriceCache) Set(market engine.Market, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[market] = price
}

func (c *PriceCache) Get(market engine.Market) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[market]
	return p, ok
}

// StartPriceUpdater periodically refreshes prices for the given markets.
func StartPriceUpdater(
	ctx context.Context,
	feed PriceFeed,
	cache *PriceCache,
	markets []engine.Market,
	interval time.Duration,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refreshOnce(ctx, feed, cache, markets, logger)

	for {
		select {
		case <-ticker.C:
			refreshOnce(ctx, feed, cache, markets, logger)
		case <-ctx.Done():
			return
		}
	}
}

func refreshOnce(ctx context.Context, feed PriceFeed, cache *PriceCache, markets []engine.Market, logger *zap.Logger) {
	for _, m := range markets {
		price, err := feed.GetSpot(ctx, m)
		if err != nil {
			logger.Warn("price update failed", zap.String("market", string(m)), zap.Error(err))
			continue
		}
		cache.Set(m, price)
		logger.Info("price update", zap.String("market", string(m)), zap.Float64("price", price))
	}
}
