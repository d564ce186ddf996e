package models

// VolatilityClass buckets symbols by how hard their price swings.
type VolatilityClass string

const (
	VolatilityLow    VolatilityClass = "low"
	VolatilityMedium VolatilityClass = "medium"
	VolatilityHigh   VolatilityClass = "high"
)

// Coefficient returns the swing multiplier the price model applies for the
// class. Unknown classes behave as medium.
func (v VolatilityClass) Coefficient() float64 {
	switch v {
	case VolatilityLow:
		return 0.8
	case VolatilityHigh:
		return 2.5
	default:
		return 1.5
	}
}

// Symbol is immutable reference data for one instrument. Defined at process
// start, never mutated.
type Symbol struct {
	Name       string          `json:"name"`
	BasePrice  float64         `json:"basePrice"`
	Volatility VolatilityClass `json:"volatility"`
}

// Tick is one generated price sample. Change and ChangePercent are relative
// to the symbol's base price, not the previous tick; over a long session the
// reported change drifts with the walk. Kept as-is from the dashboard's
// original behavior.
type Tick struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	Timestamp     int64   `json:"timestamp"` // ms since epoch
}

// Candle is one daily OHLCV bucket. Invariant: Low <= min(Open, Close) and
// max(Open, Close) <= High.
type Candle struct {
	Timestamp int64   `json:"timestamp"` // bucket start, ms since epoch
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// MarketStatus is the wall-clock trading state.
type MarketStatus struct {
	Open bool   `json:"open"`
	Text string `json:"text"`
}
