package market

import (
	"marketsim/internal/domain/models"
)

// MergeTick folds a live tick into the most recent candle: close is
// replaced, high/low are extended. Ticks never append a candle; only the
// generator does. Known limitation: there is no day-boundary rollover, so a
// session running past midnight keeps extending the final daily bar. Kept
// isolated here so a future rollover fix is a local change.
func MergeTick(candles []models.Candle, t models.Tick) {
	if len(candles) == 0 {
		return
	}
	last := &candles[len(candles)-1]
	last.Close = t.Price
	if t.Price > last.High {
		last.High = t.Price
	}
	if t.Price < last.Low {
		last.Low = t.Price
	}
}
