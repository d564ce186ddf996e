package usecase

import (
	"context"
	"fmt"
	"time"

	"marketsim/internal/domain/models"
	drepo "marketsim/internal/domain/repository"
	"marketsim/internal/render"
	"marketsim/internal/service/market"
)

// ChartUseCase turns a symbol's candle history plus its live price into a
// frame of draw commands the browser canvas replays.
type ChartUseCase struct {
	data    *MarketDataUseCase
	metrics drepo.Metrics
}

func NewChartUseCase(data *MarketDataUseCase, metrics drepo.Metrics) *ChartUseCase {
	return &ChartUseCase{data: data, metrics: metrics}
}

type ChartFrameParams struct {
	Symbol   string
	Days     int
	Viewport render.Viewport
}

// ChartFrame is one full repaint of a symbol's chart.
type ChartFrame struct {
	Symbol      string          `json:"symbol"`
	LivePrice   float64         `json:"livePrice"`
	Viewport    render.Viewport `json:"viewport"`
	Ops         []render.Op     `json:"ops"`
	GeneratedAt int64           `json:"generatedAt"`
}

// BuildFrame fetches history, merges the live price into the latest candle,
// and records the draw commands for the viewport.
func (uc *ChartUseCase) BuildFrame(ctx context.Context, p ChartFrameParams) (*ChartFrame, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	candles, err := uc.data.History(ctx, p.Symbol, p.Days)
	if err != nil {
		return nil, fmt.Errorf("chart history: %w", err)
	}

	live := uc.data.CurrentPrice(p.Symbol)
	market.MergeTick(candles, models.Tick{Symbol: p.Symbol, Price: live})

	cl := render.NewCommandList()
	start := time.Now()
	render.DrawFrame(cl, candles, live, p.Viewport)
	uc.metrics.RecordLatency("render_frame", time.Since(start).Seconds())

	return &ChartFrame{
		Symbol:      p.Symbol,
		LivePrice:   live,
		Viewport:    p.Viewport,
		Ops:         cl.Ops,
		GeneratedAt: time.Now().UnixMilli(),
	}, nil
}
