package market

import (
	"math"
	"sync"
	"time"

	"marketsim/internal/domain/models"
	drepo "marketsim/internal/domain/repository"
)

const (
	DefaultHistoryDays = 100

	historyVolumeMin  = 500_000
	historyVolumeSpan = 5_000_000

	dayMillis = 24 * 60 * 60 * 1000
)

// Generator synthesizes daily backfill candles so a chart has something to
// show before live ticks arrive. The walk starts at the symbol's base price;
// randomness is injected, so a seeded source makes the series reproducible.
type Generator struct {
	registry drepo.Registry

	mu   sync.Mutex // rand sources are not safe for concurrent draws
	rand Rand
	now  func() time.Time
}

func NewGenerator(registry drepo.Registry, rnd Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{registry: registry, rand: rnd, now: now}
}

// Generate returns days+1 candles oldest first, one per day, the last
// bucketed at "now". Each day closes at open*(1+uniform(-0.5,0.5)*dailyVol)
// and the high/low extend beyond the body by up to 2%, which keeps the OHLC
// invariant by construction.
func (g *Generator) Generate(symbol string, days int) []models.Candle {
	if days <= 0 {
		days = DefaultHistoryDays
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.registry.BasePrice(symbol)
	dailyVol := g.registry.Volatility(symbol).Coefficient() * 0.01
	nowMs := g.now().UnixMilli()

	candles := make([]models.Candle, 0, days+1)
	price := base
	for i := days; i >= 0; i-- {
		open := price
		dailyChange := (g.rand.Float64() - 0.5) * dailyVol
		cls := open * (1 + dailyChange)
		high := math.Max(open, cls) * (1 + g.rand.Float64()*0.02)
		low := math.Min(open, cls) * (1 - g.rand.Float64()*0.02)

		candles = append(candles, models.Candle{
			Timestamp: nowMs - int64(i)*dayMillis,
			Open:      Round2(open),
			High:      Round2(high),
			Low:       Round2(low),
			Close:     Round2(cls),
			Volume:    historyVolumeMin + g.rand.Int63n(historyVolumeSpan),
		})
		price = cls
	}
	return candles
}
