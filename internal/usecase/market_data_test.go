package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketsim/internal/domain/models"
	"marketsim/internal/service/market"
	"marketsim/pkg/cache"
)

type nopMetrics struct{}

func (nopMetrics) RecordTick(string, float64)    {}
func (nopMetrics) RecordSubscribers(string, int) {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

// fixedStream serves a constant live price.
type fixedStream struct{ price float64 }

func (s fixedStream) Subscribe(string, func(models.Tick)) func() { return func() {} }

func (s fixedStream) CurrentPrice(string) float64 { return s.price }

// countingHistory returns a canned series and counts generator calls.
type countingHistory struct {
	mu      sync.Mutex
	calls   int
	candles []models.Candle
}

func (h *countingHistory) Generate(string, int) []models.Candle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	return h.candles
}

func (h *countingHistory) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

func testSeries() []models.Candle {
	return []models.Candle{
		{Timestamp: 1, Open: 100, High: 110, Low: 95, Close: 105, Volume: 1000},
		{Timestamp: 2, Open: 105, High: 112, Low: 101, Close: 103, Volume: 1200},
	}
}

func newTestUseCase(t *testing.T, hist *countingHistory, live float64) *MarketDataUseCase {
	t.Helper()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	return NewMarketDataUseCase(
		market.NewStaticRegistry(),
		fixedStream{price: live},
		hist,
		mc,
		nopMetrics{},
		time.Minute,
	)
}

func TestHistoryCachesGeneratedSeries(t *testing.T) {
	hist := &countingHistory{candles: testSeries()}
	uc := newTestUseCase(t, hist, 108)
	ctx := context.Background()

	first, err := uc.History(ctx, "RELIANCE", 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("unexpected candle count %d", len(first))
	}

	second, err := uc.History(ctx, "RELIANCE", 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if hist.callCount() != 1 {
		t.Fatalf("second call must hit the cache, generator calls = %d", hist.callCount())
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cached series differs at %d", i)
		}
	}
}

func TestHistoryKeysPerDayCount(t *testing.T) {
	hist := &countingHistory{candles: testSeries()}
	uc := newTestUseCase(t, hist, 108)
	ctx := context.Background()

	if _, err := uc.History(ctx, "TCS", 2); err != nil {
		t.Fatalf("history: %v", err)
	}
	if _, err := uc.History(ctx, "TCS", 3); err != nil {
		t.Fatalf("history: %v", err)
	}
	if hist.callCount() != 2 {
		t.Fatalf("different day counts are different cache entries, calls = %d", hist.callCount())
	}
}

func TestHistoryRequiresSymbol(t *testing.T) {
	uc := newTestUseCase(t, &countingHistory{candles: testSeries()}, 108)
	if _, err := uc.History(context.Background(), "", 10); err == nil {
		t.Fatalf("expected error for empty symbol")
	}
}

func TestSymbolsAndStatus(t *testing.T) {
	uc := newTestUseCase(t, &countingHistory{candles: testSeries()}, 108)
	if len(uc.Symbols()) != 12 {
		t.Fatalf("expected the full reference table")
	}
	st := uc.Status()
	if st.Text != "Market Open" && st.Text != "Market Closed" {
		t.Fatalf("unexpected status %+v", st)
	}
	if got := uc.CurrentPrice("RELIANCE"); got != 108 {
		t.Fatalf("current price = %v, want 108", got)
	}
}
