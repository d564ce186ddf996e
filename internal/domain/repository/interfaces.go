package repository

import (
	"marketsim/internal/domain/models"
)

// Registry resolves reference data for a symbol. Unknown symbols resolve to
// a deterministic fallback instead of an error: the dashboard never rejects
// an arbitrary symbol string.
type Registry interface {
	BasePrice(symbol string) float64
	Volatility(symbol string) models.VolatilityClass
	Symbols() []models.Symbol
}

// TickStream is the subscription surface of the tick engine. Subscribe
// delivers one synchronous zero-change tick before any timer-driven tick and
// returns an idempotent unsubscribe handle.
type TickStream interface {
	Subscribe(symbol string, fn func(models.Tick)) (unsubscribe func())
	CurrentPrice(symbol string) float64
}

// HistorySource synthesizes backfill candles for a symbol, oldest first,
// days+1 entries with the last bucket at "now".
type HistorySource interface {
	Generate(symbol string, days int) []models.Candle
}

// Metrics records engine and pipeline observability signals.
type Metrics interface {
	RecordTick(symbol string, price float64)
	RecordSubscribers(symbol string, n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
