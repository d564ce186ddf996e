package market

import (
	"sort"
	"testing"

	"marketsim/internal/domain/models"
)

func TestRegistryKnownSymbols(t *testing.T) {
	r := NewStaticRegistry()
	if got := r.BasePrice("RELIANCE"); got != 2500 {
		t.Fatalf("RELIANCE base = %v, want 2500", got)
	}
	if got := r.Volatility("TCS"); got != models.VolatilityLow {
		t.Fatalf("TCS volatility = %v, want low", got)
	}
	if got := r.Volatility("TATAMOTORS"); got != models.VolatilityHigh {
		t.Fatalf("TATAMOTORS volatility = %v, want high", got)
	}
}

func TestRegistryFallbackDeterministic(t *testing.T) {
	r := NewStaticRegistry()
	for _, sym := range []string{"ZZTOP", "ACME", "X", "LONGUNKNOWNSYMBOL"} {
		p := r.BasePrice(sym)
		if p < 1000 || p >= 3000 {
			t.Fatalf("%s: fallback %v outside [1000, 3000)", sym, p)
		}
		if p != r.BasePrice(sym) {
			t.Fatalf("%s: fallback not deterministic", sym)
		}
	}
	if r.Volatility("ZZTOP") != models.VolatilityMedium {
		t.Fatalf("unknown symbols trade as medium volatility")
	}
}

func TestRegistrySymbolsSorted(t *testing.T) {
	r := NewStaticRegistry()
	syms := r.Symbols()
	if len(syms) != 12 {
		t.Fatalf("expected 12 symbols, got %d", len(syms))
	}
	if !sort.SliceIsSorted(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name }) {
		t.Fatalf("symbols not sorted by name")
	}
	for _, s := range syms {
		if s.BasePrice <= 0 {
			t.Fatalf("%s: non-positive base price", s.Name)
		}
	}
}
