package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketsim/internal/domain/models"
	drepo "marketsim/internal/domain/repository"
	"marketsim/internal/service/market"
	"marketsim/pkg/cache"
)

const maxHistoryDays = 1000

// MarketDataUseCase serves the dashboard's reference, history, and status
// queries. Generated history is cached so repeated chart loads within the
// TTL see the same backfill.
type MarketDataUseCase struct {
	registry drepo.Registry
	engine   drepo.TickStream
	history  drepo.HistorySource
	cache    cache.Service
	metrics  drepo.Metrics
	ttl      time.Duration
	now      func() time.Time
}

func NewMarketDataUseCase(
	registry drepo.Registry,
	engine drepo.TickStream,
	history drepo.HistorySource,
	c cache.Service,
	metrics drepo.Metrics,
	historyTTL time.Duration,
) *MarketDataUseCase {
	if historyTTL <= 0 {
		historyTTL = 5 * time.Minute
	}
	return &MarketDataUseCase{
		registry: registry,
		engine:   engine,
		history:  history,
		cache:    c,
		metrics:  metrics,
		ttl:      historyTTL,
		now:      time.Now,
	}
}

// History returns days+1 daily candles for the symbol, oldest first.
func (uc *MarketDataUseCase) History(ctx context.Context, symbol string, days int) ([]models.Candle, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if days <= 0 {
		days = market.DefaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	key := fmt.Sprintf("history:%s:%d", symbol, days)
	var cached []models.Candle
	if err := uc.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		uc.metrics.RecordError("history_cache_get")
	}

	start := uc.now()
	candles := uc.history.Generate(symbol, days)
	uc.metrics.RecordLatency("history_generate", time.Since(start).Seconds())

	if err := uc.cache.Set(ctx, key, candles, uc.ttl); err != nil {
		uc.metrics.RecordError("history_cache_set")
	}
	return candles, nil
}

// CurrentPrice returns the last known price for the symbol, or its base
// price if it was never subscribed.
func (uc *MarketDataUseCase) CurrentPrice(symbol string) float64 {
	return uc.engine.CurrentPrice(symbol)
}

// Symbols lists the reference table.
func (uc *MarketDataUseCase) Symbols() []models.Symbol {
	return uc.registry.Symbols()
}

// Status reports the wall-clock market state.
func (uc *MarketDataUseCase) Status() models.MarketStatus {
	return market.Status(uc.now())
}
