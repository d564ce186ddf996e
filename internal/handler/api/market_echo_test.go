package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketsim/internal/domain/models"
	"marketsim/internal/service/market"
	"marketsim/internal/usecase"
	"marketsim/pkg/cache"
	xhttp "marketsim/pkg/http"
	xlogger "marketsim/pkg/logger"

	"github.com/labstack/echo/v4"
)

type nopMetrics struct{}

func (nopMetrics) RecordTick(string, float64)    {}
func (nopMetrics) RecordSubscribers(string, int) {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

type fixedStream struct{ price float64 }

func (s fixedStream) Subscribe(string, func(models.Tick)) func() { return func() {} }

func (s fixedStream) CurrentPrice(string) float64 { return s.price }

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	registry := market.NewStaticRegistry()
	gen := market.NewGenerator(registry, rand.New(rand.NewSource(1)), time.Now)
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	data := usecase.NewMarketDataUseCase(registry, fixedStream{price: 2510}, gen, mc, nopMetrics{}, time.Minute)
	charts := usecase.NewChartUseCase(data, nopMetrics{})

	e := echo.New()
	NewMarketEchoHandler(l, data, charts).RegisterRoutes(e)
	return e
}

func doGet(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestSymbolsEndpoint(t *testing.T) {
	e := newTestRouter(t)
	rec, env := doGet(t, e, "/api/symbols")
	if rec.Code != http.StatusOK || env.Status != http.StatusOK {
		t.Fatalf("status %d/%d", rec.Code, env.Status)
	}
	syms, ok := env.Data.([]interface{})
	if !ok || len(syms) != 12 {
		t.Fatalf("expected 12 symbols, got %#v", env.Data)
	}
}

func TestStatusEndpoint(t *testing.T) {
	e := newTestRouter(t)
	_, env := doGet(t, e, "/api/status")
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data %#v", env.Data)
	}
	if _, ok := data["open"]; !ok {
		t.Fatalf("status payload missing open flag")
	}
}

func TestPriceEndpoint(t *testing.T) {
	e := newTestRouter(t)
	_, env := doGet(t, e, "/api/price?symbol=RELIANCE")
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data %#v", env.Data)
	}
	if data["price"] != 2510.0 {
		t.Fatalf("price = %v, want 2510", data["price"])
	}
}

func TestPriceRequiresSymbol(t *testing.T) {
	e := newTestRouter(t)
	_, env := doGet(t, e, "/api/price")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status %d, want 400", env.Status)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	e := newTestRouter(t)
	_, env := doGet(t, e, "/api/history?symbol=RELIANCE&days=10")
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data %#v", env.Data)
	}
	if data["count"] != 11.0 {
		t.Fatalf("count = %v, want 11", data["count"])
	}
}

func TestHistoryRejectsBadDays(t *testing.T) {
	e := newTestRouter(t)
	_, env := doGet(t, e, "/api/history?symbol=RELIANCE&days=5000")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status %d, want 400", env.Status)
	}
}

func TestChartEndpoint(t *testing.T) {
	e := newTestRouter(t)
	_, env := doGet(t, e, "/api/chart?symbol=RELIANCE&days=10&width=640&height=360")
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data %#v", env.Data)
	}
	ops, ok := data["ops"].([]interface{})
	if !ok || len(ops) == 0 {
		t.Fatalf("chart frame has no ops: %#v", data["ops"])
	}
	if data["livePrice"] != 2510.0 {
		t.Fatalf("livePrice = %v", data["livePrice"])
	}
}
