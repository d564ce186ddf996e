package market

import (
	"math"
	"time"

	"marketsim/internal/domain/models"
)

// Rand is the subset of math/rand the simulation draws from. Injected so
// tests can pin a seed.
type Rand interface {
	Float64() float64
	Int63n(n int64) int64
}

// PriceModel computes successive price samples. It holds no per-symbol
// state; randomness and the wall clock are injected.
type PriceModel struct {
	rand Rand
	now  func() time.Time
}

func NewPriceModel(rnd Rand, now func() time.Time) *PriceModel {
	if now == nil {
		now = time.Now
	}
	return &PriceModel{rand: rnd, now: now}
}

// NextPrice advances prev by a volatility-scaled random step plus a
// time-of-day trend bias. The result never drops below half the base price,
// which stops a long losing streak from running a symbol into the ground.
func (m *PriceModel) NextPrice(prev, base float64, class models.VolatilityClass) float64 {
	randomFactor := m.rand.Float64()*2 - 1
	delta := prev * (class.Coefficient()*randomFactor + m.trendBias()) * 0.01
	next := prev + delta
	if floor := base * 0.5; next < floor {
		next = floor
	}
	return next
}

// trendBias leans the walk upward through the morning session and slightly
// down in the afternoon; outside trading hours it is small symmetric noise.
func (m *PriceModel) trendBias() float64 {
	switch h := m.now().Hour(); {
	case h >= 9 && h < 12:
		return 0.1
	case h >= 12 && h <= 15:
		return -0.05
	default:
		return m.rand.Float64()*0.1 - 0.05
	}
}

// Round2 rounds to two decimals, the display precision for all prices.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
