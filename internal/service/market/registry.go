package market

import (
	"hash/fnv"
	"sort"

	"marketsim/internal/domain/models"
)

// Reference table for the simulated exchange. Prices are rough NSE levels;
// they only seed the random walk, nothing here tracks a real market.
var symbolTable = map[string]models.Symbol{
	"RELIANCE":   {Name: "RELIANCE", BasePrice: 2500, Volatility: models.VolatilityMedium},
	"TCS":        {Name: "TCS", BasePrice: 3200, Volatility: models.VolatilityLow},
	"INFY":       {Name: "INFY", BasePrice: 1450, Volatility: models.VolatilityMedium},
	"HDFCBANK":   {Name: "HDFCBANK", BasePrice: 1600, Volatility: models.VolatilityLow},
	"ICICIBANK":  {Name: "ICICIBANK", BasePrice: 950, Volatility: models.VolatilityMedium},
	"SBIN":       {Name: "SBIN", BasePrice: 570, Volatility: models.VolatilityMedium},
	"BHARTIARTL": {Name: "BHARTIARTL", BasePrice: 850, Volatility: models.VolatilityLow},
	"ITC":        {Name: "ITC", BasePrice: 440, Volatility: models.VolatilityLow},
	"WIPRO":      {Name: "WIPRO", BasePrice: 400, Volatility: models.VolatilityMedium},
	"HCLTECH":    {Name: "HCLTECH", BasePrice: 1150, Volatility: models.VolatilityMedium},
	"TATAMOTORS": {Name: "TATAMOTORS", BasePrice: 650, Volatility: models.VolatilityHigh},
	"ADANIENT":   {Name: "ADANIENT", BasePrice: 2400, Volatility: models.VolatilityHigh},
}

const (
	fallbackPriceMin  = 1000
	fallbackPriceSpan = 2000
)

// StaticRegistry serves the fixed symbol table.
type StaticRegistry struct{}

func NewStaticRegistry() *StaticRegistry { return &StaticRegistry{} }

// BasePrice returns the configured base price, or a deterministic fallback
// in [1000, 3000) derived from the symbol string for anything outside the
// table. Accepting arbitrary symbols is deliberate.
func (r *StaticRegistry) BasePrice(symbol string) float64 {
	if s, ok := symbolTable[symbol]; ok {
		return s.BasePrice
	}
	return fallbackPrice(symbol)
}

// Volatility returns the configured class; unknown symbols trade as medium.
func (r *StaticRegistry) Volatility(symbol string) models.VolatilityClass {
	if s, ok := symbolTable[symbol]; ok {
		return s.Volatility
	}
	return models.VolatilityMedium
}

// Symbols lists the table sorted by name for the dashboard picker.
func (r *StaticRegistry) Symbols() []models.Symbol {
	out := make([]models.Symbol, 0, len(symbolTable))
	for _, s := range symbolTable {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// fallbackPrice hashes the symbol into [1000, 3000) with cent granularity,
// so the same unknown symbol always lands on the same base price.
func fallbackPrice(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	cents := h.Sum32() % (fallbackPriceSpan * 100)
	return fallbackPriceMin + float64(cents)/100
}
