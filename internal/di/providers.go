package di

import (
	"fmt"
	"math/rand"
	"time"

	drepo "marketsim/internal/domain/repository"
	"marketsim/internal/handler/api"
	"marketsim/internal/handler/ws"
	mid "marketsim/internal/middleware"
	"marketsim/internal/service/market"
	"marketsim/internal/usecase"
	"marketsim/pkg/cache"
	"marketsim/pkg/config"
	xhttp "marketsim/pkg/http"
	applogger "marketsim/pkg/logger"
	"marketsim/pkg/metrics"
	"marketsim/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideRegistry creates the static symbol reference table.
func ProvideRegistry() drepo.Registry {
	return market.NewStaticRegistry()
}

// ProvidePriceModel creates the stochastic price model with its own
// randomness source.
func ProvidePriceModel() *market.PriceModel {
	return market.NewPriceModel(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// ProvideEngine creates the tick engine. Tick cadence comes from config when
// set, otherwise the engine default applies.
func ProvideEngine(registry drepo.Registry, model *market.PriceModel, m drepo.Metrics, cfg *config.Config) *market.Engine {
	opts := []market.EngineOption{}
	if cfg.Market.TickPeriodMin > 0 && cfg.Market.TickPeriodMax > cfg.Market.TickPeriodMin {
		opts = append(opts, market.WithTickPeriod(cfg.Market.TickPeriodMin, cfg.Market.TickPeriodMax))
	}
	return market.NewEngine(registry, model, m,
		rand.New(rand.NewSource(time.Now().UnixNano())), opts...)
}

// ProvideHistorySource creates the candle backfill generator. It gets a
// randomness source separate from the engine's so the two never contend.
func ProvideHistorySource(registry drepo.Registry) drepo.HistorySource {
	return market.NewGenerator(registry, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// ProvideCache creates the cache backend selected in config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	memOpts := []cache.MemoryOption{}
	if cfg.Cache.Memory.MaxSize > 0 {
		memOpts = append(memOpts, cache.WithMaxSize(cfg.Cache.Memory.MaxSize))
	}
	if cfg.Cache.Memory.CleanupInterval > 0 {
		memOpts = append(memOpts, cache.WithCleanupInterval(cfg.Cache.Memory.CleanupInterval))
	}

	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(memOpts...), nil
	case "redis":
		rc, err := cache.NewRedisCache(
			cache.WithAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			cache.WithCredentials(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
			cache.WithPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	case "layered":
		rc, err := cache.NewRedisCache(
			cache.WithAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			cache.WithCredentials(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
			cache.WithPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(rc, memOpts...), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideMarketDataUseCase creates the market-data use case.
func ProvideMarketDataUseCase(
	registry drepo.Registry,
	engine *market.Engine,
	history drepo.HistorySource,
	c cache.Service,
	m drepo.Metrics,
	cfg *config.Config,
) *usecase.MarketDataUseCase {
	return usecase.NewMarketDataUseCase(registry, engine, history, c, m, cfg.Market.HistoryTTL)
}

// ProvideChartUseCase creates the chart-frame use case.
func ProvideChartUseCase(data *usecase.MarketDataUseCase, m drepo.Metrics) *usecase.ChartUseCase {
	return usecase.NewChartUseCase(data, m)
}

// ProvideAPIHandler creates the REST handler.
func ProvideAPIHandler(l *applogger.Logger, data *usecase.MarketDataUseCase, charts *usecase.ChartUseCase) *api.MarketEchoHandler {
	return api.NewMarketEchoHandler(l, data, charts)
}

// ProvideStreamHandler creates the websocket handler with per-connection
// pipeline limits from config.
func ProvideStreamHandler(l *applogger.Logger, engine *market.Engine, m drepo.Metrics, cfg *config.Config) *ws.StreamHandler {
	pipeOpts := []mid.PipelineOption{}
	if cfg.Stream.MaxPerSecond > 0 {
		pipeOpts = append(pipeOpts, mid.WithMaxPerSecond(cfg.Stream.MaxPerSecond))
	}
	if cfg.Stream.BufferSize > 0 {
		pipeOpts = append(pipeOpts, mid.WithBufferSize(cfg.Stream.BufferSize))
	}

	opts := []ws.StreamOption{ws.WithPipelineOptions(pipeOpts...)}
	if cfg.Stream.SubscribeBurst > 0 {
		opts = append(opts, ws.WithSubscribeLimit(cfg.Stream.SubscribeBurst, cfg.Stream.SubscribeRefill))
	}
	if cfg.Stream.WriteTimeout > 0 {
		opts = append(opts, ws.WithWriteTimeout(cfg.Stream.WriteTimeout))
	}
	return ws.NewStreamHandler(l, engine, m, opts...)
}

// ProvideHandlers collects route handlers for the HTTP server.
func ProvideHandlers(apiHandler *api.MarketEchoHandler, streamHandler *ws.StreamHandler) []xhttp.Handler {
	return []xhttp.Handler{apiHandler, streamHandler}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	engine *market.Engine,
	c cache.Service,
	handlers []xhttp.Handler,
) *server.App {
	return server.New(cfg, l, engine, c, handlers)
}
